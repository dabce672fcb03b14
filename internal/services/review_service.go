// Package services – ReviewService
//
// This file implements the ReviewService, which governs how ratings and
// comments are attached to recipes. It enforces the identity rules (one
// review per recipe per identity axis), runs the upsert-or-migrate
// decision atomically, and implements the anonymous→identified
// reconciliation: an authenticated submission that also carries the
// client's anonymous id re-attributes the prior anonymous review instead
// of inserting a second row.
//
// Read paths (List, Stats) are presentation-enhancing and degrade to
// empty/zero results when the relational store is unreachable; listing
// pages must render without reviews rather than fail.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/smagen/go-recipe-backend/internal/domain"
	"github.com/smagen/go-recipe-backend/internal/repo"
)

// Identity names the author of a review: exactly one of UserID and
// AnonymousID identifies it. An authenticated submission may carry both;
// the anonymous id is then only used to find a prior anonymous review to
// migrate.
type Identity struct {
	// UserID is the authenticated account id, empty for anonymous clients.
	UserID string
	// AnonymousID is the opaque client-generated id.
	AnonymousID string
}

// valid reports whether the identity names anyone at all.
func (id Identity) valid() bool { return id.UserID != "" || id.AnonymousID != "" }

// Owns reports whether the identity owns the given review. An identified
// review is owned by its user only; an anonymous review by its client id
// only.
func (id Identity) Owns(r *domain.Review) bool {
	if r.UserID != nil {
		return id.UserID != "" && id.UserID == *r.UserID
	}
	if r.AnonymousID != nil {
		return id.AnonymousID != "" && id.AnonymousID == *r.AnonymousID
	}
	return false
}

// ReviewService implements the use-cases around recipe reviews.
type ReviewService struct {
	// DB is the database handle used for all review operations.
	DB *gorm.DB
}

// Upsert records a rating (and optional comment) for recipeSlug on
// behalf of identity.
//
// Semantics and validation:
//   - rating must be within 1..5; otherwise ErrInvalidRating.
//   - recipeSlug must be non-blank; otherwise ErrMissingRecipeSlug.
//   - identity must carry a user id or an anonymous id; otherwise
//     ErrMissingIdentity.
//   - comment is normalized: blank or whitespace-only becomes NULL.
//
// Resolution order inside one transaction:
//  1. A review by the same identity axis for this recipe exists →
//     update rating/comment in place (same row id, bumped UpdatedAt).
//  2. The submission is authenticated AND carries an anonymous id AND an
//     anonymous review for this recipe exists under that id → migrate
//     that row (populate user_id, clear anonymous_id, apply
//     rating/comment).
//  3. Otherwise insert a new row.
//
// The transaction serializes the lookup-then-write sequence so a double
// submission from the same client cannot produce duplicate rows.
func (s *ReviewService) Upsert(ctx context.Context, recipeSlug string, id Identity, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(recipeSlug) == "" {
		return nil, ErrMissingRecipeSlug
	}
	if !id.valid() {
		return nil, ErrMissingIdentity
	}
	normalized := normalizeComment(comment)

	var out *domain.Review
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) Same-axis lookup.
		if id.UserID != "" {
			if existing, err := repo.GetReviewByUser(ctx, tx, recipeSlug, id.UserID); err == nil {
				if err := repo.UpdateReview(ctx, tx, existing.ID, rating, normalized); err != nil {
					return err
				}
				out, err = repo.GetReview(ctx, tx, existing.ID)
				return err
			} else if !errors.Is(err, repo.ErrNotFound) {
				return err
			}

			// 2) Anonymous→identified migration.
			if id.AnonymousID != "" {
				if prior, err := repo.GetReviewByAnonymous(ctx, tx, recipeSlug, id.AnonymousID); err == nil {
					if err := repo.ReassignReviewToUser(ctx, tx, prior.ID, id.UserID, rating, normalized); err != nil {
						return err
					}
					out, err = repo.GetReview(ctx, tx, prior.ID)
					return err
				} else if !errors.Is(err, repo.ErrNotFound) {
					return err
				}
			}

			// 3) Fresh identified row.
			uid := id.UserID
			var err error
			out, err = repo.CreateReview(ctx, tx, recipeSlug, &uid, nil, rating, normalized)
			return err
		}

		// Anonymous axis.
		if existing, err := repo.GetReviewByAnonymous(ctx, tx, recipeSlug, id.AnonymousID); err == nil {
			if err := repo.UpdateReview(ctx, tx, existing.ID, rating, normalized); err != nil {
				return err
			}
			out, err = repo.GetReview(ctx, tx, existing.ID)
			return err
		} else if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		anon := id.AnonymousID
		var err error
		out, err = repo.CreateReview(ctx, tx, recipeSlug, nil, &anon, rating, normalized)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every review for a recipe, newest first. Store failures
// degrade to an empty slice: review display is a non-critical
// enhancement and must never break a recipe page.
func (s *ReviewService) List(ctx context.Context, recipeSlug string) []domain.Review {
	out, err := repo.ListReviewsByRecipe(ctx, s.DB, recipeSlug)
	if err != nil {
		log.Warn().Err(err).Str("recipe_slug", recipeSlug).Msg("review listing degraded to empty")
		return []domain.Review{}
	}
	if out == nil {
		out = []domain.Review{}
	}
	return out
}

// Stats returns the review aggregate for a recipe. Store failures
// degrade to the zero aggregate for the same reason as List.
func (s *ReviewService) Stats(ctx context.Context, recipeSlug string) *repo.ReviewStats {
	stats, err := repo.GetReviewStats(ctx, s.DB, recipeSlug)
	if err != nil {
		log.Warn().Err(err).Str("recipe_slug", recipeSlug).Msg("review stats degraded to zero")
		return &repo.ReviewStats{RatingCounts: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	}
	return stats
}

// Delete removes a review owned by identity.
//
// Errors:
//   - ErrReviewNotFound when the review does not exist.
//   - ErrForbiddenReview when identity does not own it; the row is left
//     unchanged.
func (s *ReviewService) Delete(ctx context.Context, reviewID string, id Identity) error {
	if !id.valid() {
		return ErrMissingIdentity
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := repo.GetReview(ctx, tx, reviewID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrReviewNotFound
			}
			return err
		}
		if !id.Owns(r) {
			return ErrForbiddenReview
		}
		return repo.DeleteReview(ctx, tx, r.ID)
	})
}

// AdoptAnonymous re-attributes every review left under anonymousID to
// the authenticated user. Called after sign-in when the client still
// holds an anonymous id. Recipes where the user already has an
// identified review are skipped (the identified review wins; the stale
// anonymous row is removed). Returns the number of adopted reviews.
func (s *ReviewService) AdoptAnonymous(ctx context.Context, userID, anonymousID string) (int, error) {
	if userID == "" || anonymousID == "" {
		return 0, ErrMissingIdentity
	}
	adopted := 0
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orphans, err := repo.ListReviewsByAnonymous(ctx, tx, anonymousID)
		if err != nil {
			return err
		}
		for i := range orphans {
			r := &orphans[i]
			if _, err := repo.GetReviewByUser(ctx, tx, r.RecipeSlug, userID); err == nil {
				// Conflict: the user already reviewed this recipe while
				// signed in. Drop the stale anonymous row.
				if err := repo.DeleteReview(ctx, tx, r.ID); err != nil {
					return err
				}
				continue
			} else if !errors.Is(err, repo.ErrNotFound) {
				return err
			}
			if err := repo.ReassignReviewToUser(ctx, tx, r.ID, userID, r.Rating, r.Comment); err != nil {
				return err
			}
			adopted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return adopted, nil
}

// DeleteAllUserData removes every review owned by userID along with the
// local user row. Used by account deletion; runs in one transaction so a
// cancelled request cannot leave a half-deleted account.
func (s *ReviewService) DeleteAllUserData(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingIdentity
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.DeleteReviewsByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := repo.DeleteUser(ctx, tx, userID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		return nil
	})
}

// normalizeComment trims a submitted comment and maps blank input to
// NULL.
func normalizeComment(comment string) *string {
	c := strings.TrimSpace(comment)
	if c == "" {
		return nil
	}
	return &c
}
