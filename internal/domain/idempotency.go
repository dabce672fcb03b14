// Package domain defines the core persistence models for the application.
// These types are used by GORM for database schema mapping and are shared
// across the repository and service layers.
package domain

import "time"

// Idempotency records the outcome of a previously processed review
// submission, keyed by (identity, recipe_slug, key). Identity is the
// authenticated user id or, for anonymous clients, the client-generated
// anonymous id prefixed by the transport layer. It enables safe retries of
// POST /reviews by returning the originally persisted review without
// re-executing the upsert.
type Idempotency struct {
	ID         string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	Identity   string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_identity_slug_key,priority:1"`
	RecipeSlug string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_identity_slug_key,priority:2"`
	Key        string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_identity_slug_key,priority:3"`
	ReviewID   string    `gorm:"type:TEXT NOT NULL"`
	Status     int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt  time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
