// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Review
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making
// them safe for use within transactions. They follow the "thin
// repository" approach: no business rules, only CRUD persistence and
// query composition. The upsert-or-migrate decision lives in
// services.ReviewService, which calls these functions inside a single
// transaction.
//
// Error semantics:
//   - When a review is not found, functions return ErrNotFound (an alias
//     of gorm.ErrRecordNotFound).
//   - On other DB errors (constraint violations, connectivity issues,
//     etc.), the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smagen/go-recipe-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ListReviewsByRecipe returns every review for a recipe slug, newest
// first. It returns an empty slice when the recipe has no reviews.
func ListReviewsByRecipe(ctx context.Context, db *gorm.DB, recipeSlug string) ([]domain.Review, error) {
	var out []domain.Review
	err := db.WithContext(ctx).
		Where("recipe_slug = ?", recipeSlug).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetReviewByUser fetches the single review for (recipeSlug, userID), or
// ErrNotFound.
func GetReviewByUser(ctx context.Context, db *gorm.DB, recipeSlug, userID string) (*domain.Review, error) {
	var r domain.Review
	err := db.WithContext(ctx).
		Where("recipe_slug = ? AND user_id = ?", recipeSlug, userID).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetReviewByAnonymous fetches the single review for
// (recipeSlug, anonymousID), or ErrNotFound.
func GetReviewByAnonymous(ctx context.Context, db *gorm.DB, recipeSlug, anonymousID string) (*domain.Review, error) {
	var r domain.Review
	err := db.WithContext(ctx).
		Where("recipe_slug = ? AND anonymous_id = ?", recipeSlug, anonymousID).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetReview fetches a review by primary key, or ErrNotFound.
func GetReview(ctx context.Context, db *gorm.DB, id string) (*domain.Review, error) {
	var r domain.Review
	if err := db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReview inserts a new review row. Exactly one of userID and
// anonymousID should be non-empty; the service layer enforces that.
func CreateReview(ctx context.Context, db *gorm.DB, recipeSlug string, userID, anonymousID *string, rating int, comment *string) (*domain.Review, error) {
	now := time.Now().UTC()
	r := &domain.Review{
		ID:          uuid.NewString(),
		RecipeSlug:  recipeSlug,
		UserID:      userID,
		AnonymousID: anonymousID,
		Rating:      rating,
		Comment:     comment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateReview overwrites rating and comment of an existing row in place
// and bumps UpdatedAt.
func UpdateReview(ctx context.Context, db *gorm.DB, id string, rating int, comment *string) error {
	res := db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating":     rating,
			"comment":    comment,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReassignReviewToUser migrates an anonymous review to an authenticated
// identity: user_id is populated, anonymous_id cleared, and the new
// rating/comment applied. This is the only transition between the two
// identity axes.
func ReassignReviewToUser(ctx context.Context, db *gorm.DB, id, userID string, rating int, comment *string) error {
	res := db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"user_id":      userID,
			"anonymous_id": nil,
			"rating":       rating,
			"comment":      comment,
			"updated_at":   time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReview removes a review by primary key. Ownership is checked in
// the service layer before this is called.
func DeleteReview(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.Review{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListReviewsByAnonymous returns every review still attributed to an
// anonymous client id, oldest first. Used by the login-time adoption
// flow.
func ListReviewsByAnonymous(ctx context.Context, db *gorm.DB, anonymousID string) ([]domain.Review, error) {
	var out []domain.Review
	err := db.WithContext(ctx).
		Where("anonymous_id = ?", anonymousID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// DeleteReviewsByUser removes every review owned by userID and returns
// the number of rows deleted. Used by account deletion.
func DeleteReviewsByUser(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	res := db.WithContext(ctx).Delete(&domain.Review{}, "user_id = ?", userID)
	return res.RowsAffected, res.Error
}
