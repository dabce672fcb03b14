// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the
// Idempotency model used to implement safe-retry semantics for the
// review submission endpoint.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smagen/go-recipe-backend/internal/domain"
)

// ErrDuplicate indicates that an idempotency record already exists for
// the given (identity, recipe_slug, key) tuple.
var ErrDuplicate = errors.New("duplicate")

// GetIdempotency returns a non-expired record or ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, identity, recipeSlug, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("identity = ? AND recipe_slug = ? AND key = ? AND expires_at > ?", identity, recipeSlug, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &rec, err
}

// CreateIdempotency inserts a record and returns ErrDuplicate on unique violation.
func CreateIdempotency(ctx context.Context, db *gorm.DB, identity, recipeSlug, key, reviewID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:         uuid.NewString(),
		Identity:   identity,
		RecipeSlug: recipeSlug,
		Key:        key,
		ReviewID:   reviewID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// GetIdempotencyByKey returns a non-expired record for (identity, key)
// regardless of recipe slug, or ErrNotFound. Used by the transport-level
// replay check, which runs before the request body (and thus the slug)
// has been read.
func GetIdempotencyByKey(ctx context.Context, db *gorm.DB, identity, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("identity = ? AND key = ? AND expires_at > ?", identity, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &rec, err
}
