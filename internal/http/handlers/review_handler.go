// Review HTTP handlers.
//
// This file exposes the review endpoints:
//   - GET    /reviews?recipeSlug=       (list, degrades to [])
//   - POST   /reviews                   (submit or replace)
//   - DELETE /reviews/{id}              (owner only)
//   - GET    /reviews/stats?recipeSlug= (aggregate, degrades to zeros)
//   - GET    /reviews/users/{userId}    (public reviewer profile)
//
// The caller's identity is the authenticated user when signed in, or the
// client-generated id from the X-Anonymous-ID header otherwise. An
// authenticated submission may carry both; the anonymous id is then used
// to migrate a previously anonymous review.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smagen/go-recipe-backend/internal/http/middleware"
)

// SubmitReviewRequest is the JSON payload for submitting a review.
type SubmitReviewRequest struct {
	// RecipeSlug identifies the reviewed recipe.
	RecipeSlug string `json:"recipeSlug" binding:"required" example:"pandekager"`
	// Rating is the star value, 1 through 5.
	Rating int `json:"rating" binding:"required" example:"4"`
	// Comment is optional free text; blank is stored as no comment.
	Comment string `json:"comment" example:"Nem og hurtig hverdagsret"`
}

// ListReviews godoc
// @ID          listReviews
// @Summary     List reviews for a recipe
// @Description Returns the recipe's reviews, newest first. Store failures yield an empty array so recipe pages always render.
// @Tags        Reviews
// @Produce     json
//
// @Param       recipeSlug  query  string  true  "Recipe slug"  example(pandekager)
//
// @Success     200  {array}   domain.Review
// @Failure     400  {object}  handlers.ErrorResponse "Missing recipeSlug"
// @Router      /reviews [get]
func (h *Handlers) ListReviews(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("recipeSlug"))
	if slug == "" {
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "recipeSlug is required")
		return
	}
	ok(c, http.StatusOK, h.reviewSvc.List(c.Request.Context(), slug))
}

// SubmitReview godoc
// @ID          submitReview
// @Summary     Submit a review
// @Description Creates the caller's review for a recipe, or replaces it when one exists. A signed-in submission that also carries X-Anonymous-ID re-attributes the prior anonymous review.
// @Tags        Reviews
// @Accept      json
// @Produce     json
//
// @Param       X-Anonymous-ID   header  string  false "Client-generated anonymous id"
// @Param       Idempotency-Key  header  string  false "Safe-retry key; a retry with the same key returns the original result"
// @Param       body             body    handlers.SubmitReviewRequest  true  "Review payload"
//
// @Success     201  {object}  domain.Review
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse "No identity"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /reviews [post]
func (h *Handlers) SubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	id := identity(c)

	key, hasKey := middleware.GetIdempotencyKey(c)
	if hasKey {
		if prev, status, hit := h.reviewSvc.Replay(c.Request.Context(), id, req.RecipeSlug, key); hit {
			ok(c, status, prev)
			return
		}
	}

	r, err := h.reviewSvc.Upsert(c.Request.Context(), req.RecipeSlug, id, req.Rating, req.Comment)
	if err != nil {
		svcError(c, err)
		return
	}
	if hasKey {
		h.reviewSvc.Record(c.Request.Context(), id, req.RecipeSlug, key, r.ID, http.StatusCreated)
	}
	ok(c, http.StatusCreated, r)
}

// DeleteReview godoc
// @ID          deleteReview
// @Summary     Delete a review
// @Description Removes a review owned by the caller.
// @Tags        Reviews
// @Produce     json
//
// @Param       X-Anonymous-ID  header  string  false "Client-generated anonymous id"
// @Param       id              path    string  true  "Review ID (UUID)"  format(uuid)
//
// @Success     200  {object}  map[string]string
// @Failure     401  {object}  handlers.ErrorResponse "No identity"
// @Failure     403  {object}  handlers.ErrorResponse "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse "Review not found"
// @Router      /reviews/{id} [delete]
func (h *Handlers) DeleteReview(c *gin.Context) {
	id := c.Param("id")
	if err := h.reviewSvc.Delete(c.Request.Context(), id, identity(c)); err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"id": id, "status": "deleted"})
}

// ReviewStats godoc
// @ID          reviewStats
// @Summary     Review statistics for a recipe
// @Description Returns the average rating (one decimal), review count and per-star counts. Store failures yield the zero aggregate.
// @Tags        Reviews
// @Produce     json
//
// @Param       recipeSlug  query  string  true  "Recipe slug"  example(pandekager)
//
// @Success     200  {object}  repo.ReviewStats
// @Failure     400  {object}  handlers.ErrorResponse "Missing recipeSlug"
// @Router      /reviews/stats [get]
func (h *Handlers) ReviewStats(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("recipeSlug"))
	if slug == "" {
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "recipeSlug is required")
		return
	}
	ok(c, http.StatusOK, h.reviewSvc.Stats(c.Request.Context(), slug))
}

// ReviewerProfile godoc
// @ID          reviewerProfile
// @Summary     Public reviewer profile
// @Description Returns the public profile and review history of a user.
// @Tags        Reviews
// @Produce     json
//
// @Param       userId  path  string  true  "User ID"
//
// @Success     200  {object}  services.PublicProfile
// @Failure     404  {object}  handlers.ErrorResponse "User not found"
// @Router      /reviews/users/{userId} [get]
func (h *Handlers) ReviewerProfile(c *gin.Context) {
	p, err := h.userSvc.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}
