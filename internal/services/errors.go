// Package services defines the business logic for the recipe catalog,
// reviews, and accounts. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages and HTTP status codes is
// performed at the handler layer.
package services

import "errors"

var (
	// ErrRecipeNotFound indicates that the requested recipe document does
	// not exist (or could not be decoded, which is treated identically).
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrReviewNotFound indicates that the requested review does not exist.
	ErrReviewNotFound = errors.New("review not found")

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRating is returned when a rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrMissingRecipeSlug is returned when a review submission carries no
	// recipe reference.
	ErrMissingRecipeSlug = errors.New("recipe slug is required")

	// ErrMissingIdentity is returned when a review operation carries
	// neither an authenticated user id nor an anonymous client id.
	ErrMissingIdentity = errors.New("an identity is required")

	// ErrForbiddenReview is returned when an identity attempts to delete a
	// review it does not own.
	ErrForbiddenReview = errors.New("review belongs to another identity")

	// ErrUpstreamAuth wraps failures reported by the external auth
	// provider.
	ErrUpstreamAuth = errors.New("auth provider error")
)
