// Auth HTTP handlers.
//
// This file exposes the account endpoints, all thin delegations to the
// external auth provider via AuthGateway:
//   - POST   /auth/signup
//   - POST   /auth/login            (adopts anonymous reviews)
//   - POST   /auth/logout
//   - POST   /auth/forgot-password
//   - GET    /auth/user
//   - PUT    /auth/profile
//   - DELETE /auth/account
//
// Provider sessions are propagated as HttpOnly cookies; the session
// middleware turns the access-token cookie back into a user id on later
// requests.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smagen/go-recipe-backend/internal/auth"
	"github.com/smagen/go-recipe-backend/internal/http/middleware"
)

// CredentialsRequest is the JSON payload for signup and login.
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email" example:"kok@example.dk"`
	Password string `json:"password" binding:"required,min=8"`
	// AnonymousID lets login adopt reviews left before signing in.
	AnonymousID string `json:"anonymousId,omitempty"`
}

// ForgotPasswordRequest is the JSON payload for password recovery.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"kok@example.dk"`
}

// UpdateProfileRequest is the JSON payload for profile updates. Absent
// fields are left unchanged.
type UpdateProfileRequest struct {
	Username  *string `json:"username" example:"Mette"`
	AvatarURL *string `json:"avatarUrl"`
}

// setSessionCookies propagates a provider session to the browser as
// HttpOnly cookies scoped to the whole site.
func setSessionCookies(c *gin.Context, s *auth.Session) {
	maxAge := s.ExpiresIn
	if maxAge <= 0 {
		maxAge = 3600
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieAccessToken, s.AccessToken, maxAge, "/", "", false, true)
	if s.RefreshToken != "" {
		c.SetCookie(middleware.CookieRefreshToken, s.RefreshToken, 30*24*3600, "/", "", false, true)
	}
}

// clearSessionCookies removes the session cookies.
func clearSessionCookies(c *gin.Context) {
	c.SetCookie(middleware.CookieAccessToken, "", -1, "/", "", false, true)
	c.SetCookie(middleware.CookieRefreshToken, "", -1, "/", "", false, true)
}

// SignUp godoc
// @ID          signUp
// @Summary     Register a new account
// @Description Creates an account at the auth provider and starts a session.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CredentialsRequest  true  "Credentials"
//
// @Success     201  {object}  auth.Account
// @Failure     400  {object}  handlers.ErrorResponse "Invalid payload or rejected by provider"
// @Failure     502  {object}  handlers.ErrorResponse "Provider unavailable"
// @Router      /auth/signup [post]
func (h *Handlers) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and a password of at least 8 characters are required")
		return
	}

	sess, err := h.authSvc.SignUp(c.Request.Context(), strings.ToLower(req.Email), req.Password)
	if err != nil {
		svcError(c, err)
		return
	}
	setSessionCookies(c, sess)
	ok(c, http.StatusCreated, sess.User)
}

// Login godoc
// @ID          login
// @Summary     Sign in
// @Description Exchanges credentials for a session. When anonymousId is supplied, reviews left anonymously are re-attributed to the account.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CredentialsRequest  true  "Credentials"
//
// @Success     200  {object}  auth.Account
// @Failure     400  {object}  handlers.ErrorResponse "Invalid payload"
// @Failure     401  {object}  handlers.ErrorResponse "Bad credentials"
// @Failure     502  {object}  handlers.ErrorResponse "Provider unavailable"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password are required")
		return
	}

	anonID := req.AnonymousID
	if anonID == "" {
		anonID = strings.TrimSpace(c.GetHeader(AnonymousIDHeader))
	}
	sess, err := h.authSvc.SignIn(c.Request.Context(), strings.ToLower(req.Email), req.Password, anonID)
	if err != nil {
		svcError(c, err)
		return
	}
	setSessionCookies(c, sess)
	ok(c, http.StatusOK, sess.User)
}

// Logout godoc
// @ID          logout
// @Summary     Sign out
// @Description Revokes the provider session and clears the session cookies. Always clears cookies, even when revocation fails.
// @Tags        Auth
// @Produce     json
//
// @Success     204  {string}  string "No Content"
// @Router      /auth/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	if tok := accessToken(c); tok != "" {
		if err := h.authSvc.SignOut(c.Request.Context(), tok); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("provider logout failed")
		}
	}
	clearSessionCookies(c)
	noContent(c)
}

// ForgotPassword godoc
// @ID          forgotPassword
// @Summary     Request a password reset
// @Description Triggers the provider's recovery mail. The response is identical whether or not the address is registered.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ForgotPasswordRequest  true  "Email"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Invalid payload"
// @Failure     502  {object}  handlers.ErrorResponse "Provider unavailable"
// @Router      /auth/forgot-password [post]
func (h *Handlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "a valid email is required")
		return
	}
	if err := h.authSvc.ResetPassword(c.Request.Context(), strings.ToLower(req.Email)); err != nil {
		svcError(c, err)
		return
	}
	noContent(c)
}

// CurrentUser godoc
// @ID          currentUser
// @Summary     Current account
// @Description Returns the account behind the session cookie.
// @Tags        Auth
// @Produce     json
//
// @Success     200  {object}  auth.Account
// @Failure     401  {object}  handlers.ErrorResponse "Not signed in"
// @Router      /auth/user [get]
func (h *Handlers) CurrentUser(c *gin.Context) {
	tok := accessToken(c)
	if tok == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not signed in")
		return
	}
	a, err := h.authSvc.CurrentUser(c.Request.Context(), tok)
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// UpdateProfile godoc
// @ID          updateProfile
// @Summary     Update profile
// @Description Updates the account's profile fields at the provider and in the local mirror.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.UpdateProfileRequest  true  "Profile fields"
//
// @Success     200  {object}  auth.Account
// @Failure     400  {object}  handlers.ErrorResponse "Invalid payload"
// @Failure     401  {object}  handlers.ErrorResponse "Not signed in"
// @Router      /auth/profile [put]
func (h *Handlers) UpdateProfile(c *gin.Context) {
	tok := accessToken(c)
	if tok == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not signed in")
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	a, err := h.authSvc.UpdateProfile(c.Request.Context(), tok, auth.ProfileUpdate{
		Username:  req.Username,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		svcError(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// DeleteAccount godoc
// @ID          deleteAccount
// @Summary     Delete account
// @Description Removes the provider account and every review and profile row it owns, then clears the session.
// @Tags        Auth
// @Produce     json
//
// @Success     204  {string}  string "No Content"
// @Failure     401  {object}  handlers.ErrorResponse "Not signed in"
// @Failure     502  {object}  handlers.ErrorResponse "Provider unavailable"
// @Router      /auth/account [delete]
func (h *Handlers) DeleteAccount(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not signed in")
		return
	}
	if err := h.authSvc.DeleteAccount(c.Request.Context(), uid); err != nil {
		svcError(c, err)
		return
	}
	clearSessionCookies(c)
	noContent(c)
}
