// Package domain defines the persistence models for users and recipe
// reviews. These types are mapped with GORM and form the relational side
// of the recipe backend; recipe content itself lives in JSON documents
// (see internal/catalog) and is never written by this application.
package domain

import "time"

// User mirrors an account held by the external auth provider. A local row
// is upserted on every sign-in so that reviews can reference a stable
// identity and public reviewer profiles can be served without calling the
// provider.
//
// Fields:
//   - ID: provider-issued UUID primary key (char(36)).
//   - Email: unique login email.
//   - Username / AvatarURL: optional profile fields, nil when unset.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Email     string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	Username  *string   `json:"username"   gorm:"type:varchar(64)"`
	AvatarURL *string   `json:"avatar_url" gorm:"type:varchar(512)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Review represents a rating (1–5) with an optional comment left on a
// recipe. A review is attributed to exactly one identity axis at a time:
// an authenticated user (UserID set) or an anonymous client (AnonymousID
// set). The anonymous→identified migration clears AnonymousID and fills
// UserID; there is no reverse transition.
//
// Uniqueness is enforced per axis: at most one review per
// (recipe_slug, user_id) and one per (recipe_slug, anonymous_id). SQLite
// and Postgres both treat NULLs as distinct in unique indexes, so rows on
// the other axis never collide.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - RecipeSlug: slug of the reviewed recipe; referenced by value, not
//     enforced against the catalog (recipes live outside the database).
//   - UserID: owning user, nil for anonymous reviews; cascade-deleted with
//     the user row.
//   - AnonymousID: opaque client-generated identifier, nil once migrated.
//   - Rating: integer 1..5 (enforced by DB constraint).
//   - Comment: optional free text; blank submissions are stored as NULL.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Review struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	RecipeSlug  string    `json:"recipe_slug"  gorm:"type:varchar(128);not null;index:idx_reviews_slug;uniqueIndex:ux_reviews_slug_user,priority:1;uniqueIndex:ux_reviews_slug_anon,priority:1"`
	UserID      *string   `json:"user_id"      gorm:"type:char(36);index;uniqueIndex:ux_reviews_slug_user,priority:2"`
	AnonymousID *string   `json:"anonymous_id" gorm:"type:varchar(128);index;uniqueIndex:ux_reviews_slug_anon,priority:2"`
	Rating      int       `json:"rating"       gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment     *string   `json:"comment"      gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// User is the owning account for identified reviews. Reviews are
	// cascade-deleted when the account is removed.
	User *User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Review.
func (Review) TableName() string { return "reviews" }

// IsAnonymous reports whether the review is still attributed to an
// anonymous client identity.
func (r *Review) IsAnonymous() bool { return r.UserID == nil && r.AnonymousID != nil }
