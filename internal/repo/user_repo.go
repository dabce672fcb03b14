// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the local
// User mirror of the external auth provider's accounts.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/smagen/go-recipe-backend/internal/domain"
)

// GetUser fetches a user by primary key, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertUser inserts or refreshes the local mirror row for a provider
// account. Called on every sign-in so profile fields stay current.
func UpsertUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	u.UpdatedAt = time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = u.UpdatedAt
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "username", "avatar_url", "updated_at"}),
		}).
		Create(u).Error
}

// UpdateUserProfile updates the mutable profile fields of a user row.
// Returns ErrNotFound when the user does not exist.
func UpdateUserProfile(ctx context.Context, db *gorm.DB, id string, username, avatarURL *string) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"username":   username,
			"avatar_url": avatarURL,
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

// DeleteUser removes a user row. Identified reviews are cascade-deleted
// by the foreign key; callers that cannot rely on FK enforcement should
// delete reviews first (see services.ReviewService.DeleteAllUserData).
func DeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
