// Safe-retry support for review submissions.
//
// Clients may send an Idempotency-Key header with POST /reviews. The
// first successful submission stores a record keyed by (identity,
// recipe slug, key); a retry with the same key within the TTL returns
// the originally persisted review without re-running the upsert.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smagen/go-recipe-backend/internal/domain"
	"github.com/smagen/go-recipe-backend/internal/repo"
)

// idempotencyTTL bounds how long a stored submission can be replayed.
const idempotencyTTL = 24 * time.Hour

// IdempotencyScope returns the string under which this identity's
// idempotency records are stored: the user id, or the anonymous id with
// a prefix so the two spaces cannot collide.
func (id Identity) IdempotencyScope() string {
	if id.UserID != "" {
		return id.UserID
	}
	if id.AnonymousID != "" {
		return "anon:" + id.AnonymousID
	}
	return ""
}

// ReplayExists reports whether a stored, non-expired submission exists
// for (identity, key). Shaped for the transport middleware's lookup
// hook; lookup failures count as "no replay".
func (s *ReviewService) ReplayExists(ctx context.Context, identity, key string, now time.Time) (bool, error) {
	_, err := repo.GetIdempotencyByKey(ctx, s.DB, identity, key, now)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Replay returns the previously persisted review and HTTP status for
// (identity, recipe slug, key), when a non-expired record exists. The
// bool result reports whether a replay was served. The slug is part of
// the lookup: reusing a key against a different recipe is a fresh
// submission, not a replay.
func (s *ReviewService) Replay(ctx context.Context, id Identity, recipeSlug, key string) (*domain.Review, int, bool) {
	scope := id.IdempotencyScope()
	if scope == "" || key == "" {
		return nil, 0, false
	}
	rec, err := repo.GetIdempotency(ctx, s.DB, scope, recipeSlug, key, time.Now().UTC())
	if err != nil {
		return nil, 0, false
	}
	r, err := repo.GetReview(ctx, s.DB, rec.ReviewID)
	if err != nil {
		// The review was deleted after the original submission; the
		// record no longer replays.
		return nil, 0, false
	}
	return r, rec.Status, true
}

// Record stores the outcome of a successful submission for later
// replays. Best-effort: a duplicate record (concurrent retry) or a
// store failure is logged and otherwise ignored, because the submission
// itself already succeeded.
func (s *ReviewService) Record(ctx context.Context, id Identity, recipeSlug, key, reviewID string, status int) {
	scope := id.IdempotencyScope()
	if scope == "" || key == "" {
		return
	}
	if _, err := repo.CreateIdempotency(ctx, s.DB, scope, recipeSlug, key, reviewID, status, idempotencyTTL); err != nil && !errors.Is(err, repo.ErrDuplicate) {
		log.Warn().Err(err).Str("recipe_slug", recipeSlug).Msg("idempotency record not stored")
	}
}
