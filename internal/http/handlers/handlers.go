// Handler wiring and shared request helpers.
//
// Handlers are transport-thin: they validate input, call application
// services through narrow interfaces, and translate results (including
// the service error sentinels) into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smagen/go-recipe-backend/internal/auth"
	"github.com/smagen/go-recipe-backend/internal/catalog"
	"github.com/smagen/go-recipe-backend/internal/domain"
	"github.com/smagen/go-recipe-backend/internal/filter"
	"github.com/smagen/go-recipe-backend/internal/http/middleware"
	"github.com/smagen/go-recipe-backend/internal/repo"
	"github.com/smagen/go-recipe-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// RecipeBrowser defines the read-only recipe catalog operations consumed
// by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RecipeBrowser interface {
	// Browse runs a listing query and returns the requested page.
	Browse(ctx context.Context, q filter.Query) (filter.Result, error)
	// Get fetches a full recipe document by slug.
	Get(ctx context.Context, slug string) (*catalog.Recipe, error)
}

// ReviewManager defines the review lifecycle operations consumed by HTTP
// handlers.
type ReviewManager interface {
	// Upsert records or replaces a rating for a recipe on behalf of an
	// identity.
	Upsert(ctx context.Context, recipeSlug string, id services.Identity, rating int, comment string) (*domain.Review, error)
	// List returns the reviews for a recipe, newest first; degraded to
	// empty on store failure.
	List(ctx context.Context, recipeSlug string) []domain.Review
	// Stats returns the review aggregate for a recipe; degraded to zero
	// on store failure.
	Stats(ctx context.Context, recipeSlug string) *repo.ReviewStats
	// Delete removes a review owned by the identity.
	Delete(ctx context.Context, reviewID string, id services.Identity) error
	// Replay returns the stored result of a previous submission for the
	// same recipe with the same idempotency key, when one exists.
	Replay(ctx context.Context, id services.Identity, recipeSlug, key string) (*domain.Review, int, bool)
	// Record stores a successful submission for later replays.
	Record(ctx context.Context, id services.Identity, recipeSlug, key, reviewID string, status int)
}

// ProfileReader exposes public user profiles.
type ProfileReader interface {
	GetProfile(ctx context.Context, userID string) (*services.PublicProfile, error)
}

// AuthGateway defines the auth operations consumed by HTTP handlers.
type AuthGateway interface {
	SignUp(ctx context.Context, email, password string) (*auth.Session, error)
	SignIn(ctx context.Context, email, password, anonymousID string) (*auth.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*auth.Account, error)
	UpdateProfile(ctx context.Context, accessToken string, upd auth.ProfileUpdate) (*auth.Account, error)
	DeleteAccount(ctx context.Context, userID string) error
	ResetPassword(ctx context.Context, email string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for recipes, reviews and auth. It
// depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	recipeSvc RecipeBrowser
	reviewSvc ReviewManager
	userSvc   ProfileReader
	authSvc   AuthGateway
}

// New constructs a Handlers instance bound to the given services.
func New(recipeSvc RecipeBrowser, reviewSvc ReviewManager, userSvc ProfileReader, authSvc AuthGateway) *Handlers {
	return &Handlers{recipeSvc: recipeSvc, reviewSvc: reviewSvc, userSvc: userSvc, authSvc: authSvc}
}

//
// Identity helpers
//

// AnonymousIDHeader carries the client-generated anonymous id used for
// reviews before sign-in.
const AnonymousIDHeader = "X-Anonymous-ID"

// userID extracts the authenticated user id from Gin context (set by the
// session middleware). Empty means the request is not signed in.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// accessToken extracts the provider access token from Gin context (set
// by the session middleware).
func accessToken(c *gin.Context) string {
	if v, ok := c.Get("accessToken"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// identity resolves the caller's review identity: the authenticated user
// id when signed in, plus any anonymous id the client still carries.
func identity(c *gin.Context) services.Identity {
	return services.Identity{
		UserID:      userID(c),
		AnonymousID: strings.TrimSpace(c.GetHeader(AnonymousIDHeader)),
	}
}

//
// Error translation
//

// svcError maps a service error sentinel onto the HTTP error taxonomy.
// Unrecognized errors become opaque 500s: internal detail is logged by
// fail(), never echoed to the client.
func svcError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRating):
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "rating must be between 1 and 5")
	case errors.Is(err, services.ErrMissingRecipeSlug):
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "recipeSlug is required")
	case errors.Is(err, services.ErrMissingIdentity):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "sign in or supply an anonymous id")
	case errors.Is(err, services.ErrForbiddenReview):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "you can only modify your own review")
	case errors.Is(err, services.ErrReviewNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "review not found")
	case errors.Is(err, services.ErrRecipeNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "recipe not found")
	case errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
	case errors.Is(err, services.ErrUpstreamAuth):
		fail(c, http.StatusBadGateway, ErrCodeUpstreamAuth, "authentication service unavailable")
	default:
		var pe *auth.ProviderError
		if errors.As(err, &pe) {
			// Provider rejections (bad credentials, duplicate email)
			// surface with their own message.
			status := http.StatusUnauthorized
			code := ErrCodeUnauthorized
			if pe.Status == http.StatusUnprocessableEntity || pe.Status == http.StatusBadRequest {
				status = http.StatusBadRequest
				code = ErrCodeBadRequest
			}
			msg := pe.Message
			if msg == "" {
				msg = "authentication failed"
			}
			fail(c, status, code, msg)
			return
		}
		// Detail goes to the log only, never to the client.
		middleware.LoggerFrom(c).Error().Err(err).Msg("unhandled service error")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
