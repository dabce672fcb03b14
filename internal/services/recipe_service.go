package services

import (
	"context"
	"errors"

	"github.com/smagen/go-recipe-backend/internal/catalog"
	"github.com/smagen/go-recipe-backend/internal/filter"
)

// RecipeService fronts the read-only recipe catalog: listing queries go
// through the filter engine, detail lookups straight to the store.
type RecipeService struct {
	Engine *filter.Engine
	Store  catalog.Store
}

// Browse runs a listing query and returns the requested page.
func (s *RecipeService) Browse(ctx context.Context, q filter.Query) (filter.Result, error) {
	return s.Engine.Run(ctx, q)
}

// Get fetches a full recipe document by slug.
//
// Errors: ErrRecipeNotFound when the slug is unknown (a malformed
// on-disk document counts as unknown).
func (s *RecipeService) Get(ctx context.Context, slug string) (*catalog.Recipe, error) {
	r, err := s.Store.Get(ctx, slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}
