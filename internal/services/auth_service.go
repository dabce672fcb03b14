// Package services – AuthService
//
// AuthService is the application-side face of the external auth
// provider. It delegates all credential handling to auth.Provider and
// keeps a local mirror row of the signed-in account so reviews can
// reference it with a foreign key. Sign-in is also the moment anonymous
// reviews are adopted into the account (see ReviewService.AdoptAnonymous).
package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/smagen/go-recipe-backend/internal/auth"
	"github.com/smagen/go-recipe-backend/internal/domain"
	"github.com/smagen/go-recipe-backend/internal/repo"
)

// AuthService wraps the external provider and synchronizes the local
// user mirror.
type AuthService struct {
	// Provider is the external auth gateway.
	Provider auth.Provider
	// Reviews is used to adopt anonymous reviews at sign-in and to
	// purge local data at account deletion.
	Reviews *ReviewService
}

// SignUp registers a new account with the provider and mirrors it
// locally. Returns the provider session.
//
// Error semantics: provider rejections (weak password, duplicate email)
// surface as *auth.ProviderError; outages map to ErrUpstreamAuth.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*auth.Session, error) {
	sess, err := s.Provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, mapProviderErr(err)
	}
	s.mirror(ctx, &sess.User)
	return sess, nil
}

// SignIn exchanges credentials for a session, refreshes the local
// mirror, and, when the client still holds an anonymous id, adopts its
// anonymous reviews into the account.
func (s *AuthService) SignIn(ctx context.Context, email, password, anonymousID string) (*auth.Session, error) {
	sess, err := s.Provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, mapProviderErr(err)
	}
	s.mirror(ctx, &sess.User)
	if anonymousID != "" {
		if n, err := s.Reviews.AdoptAnonymous(ctx, sess.User.ID, anonymousID); err != nil {
			// Adoption is best-effort; a failure must not block sign-in.
			log.Warn().Err(err).Str("user_id", sess.User.ID).Msg("anonymous review adoption failed")
		} else if n > 0 {
			log.Info().Int("adopted", n).Str("user_id", sess.User.ID).Msg("anonymous reviews adopted")
		}
	}
	return sess, nil
}

// SignOut revokes the provider session.
func (s *AuthService) SignOut(ctx context.Context, accessToken string) error {
	if err := s.Provider.SignOut(ctx, accessToken); err != nil {
		return mapProviderErr(err)
	}
	return nil
}

// CurrentUser resolves the account behind an access token.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*auth.Account, error) {
	a, err := s.Provider.GetUser(ctx, accessToken)
	if err != nil {
		return nil, mapProviderErr(err)
	}
	return a, nil
}

// UpdateProfile applies a profile update at the provider and mirrors it
// locally so review listings show the new name immediately.
func (s *AuthService) UpdateProfile(ctx context.Context, accessToken string, upd auth.ProfileUpdate) (*auth.Account, error) {
	a, err := s.Provider.UpdateUser(ctx, accessToken, upd)
	if err != nil {
		return nil, mapProviderErr(err)
	}
	s.mirror(ctx, a)
	return a, nil
}

// DeleteAccount removes the provider account and all local data owned
// by it. The provider deletion runs first: if it fails the local data
// stays, and a retry is safe.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.Provider.DeleteUser(ctx, userID); err != nil {
		return mapProviderErr(err)
	}
	return s.Reviews.DeleteAllUserData(ctx, userID)
}

// ResetPassword triggers the provider's recovery mail. The result is
// deliberately uniform so the endpoint cannot be used to probe which
// addresses exist.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	if err := s.Provider.ResetPassword(ctx, email); err != nil {
		var pe *auth.ProviderError
		if errors.As(err, &pe) && !pe.Temporary() {
			// Unknown address and similar rejections look like success.
			return nil
		}
		return mapProviderErr(err)
	}
	return nil
}

// mirror refreshes the local user row. Best-effort: a mirror failure is
// logged, not surfaced, because the provider session is already valid.
func (s *AuthService) mirror(ctx context.Context, a *auth.Account) {
	u := &domain.User{ID: a.ID, Email: a.Email}
	if a.Username != "" {
		u.Username = &a.Username
	}
	if a.AvatarURL != "" {
		u.AvatarURL = &a.AvatarURL
	}
	if err := repo.UpsertUser(ctx, s.Reviews.DB, u); err != nil {
		log.Warn().Err(err).Str("user_id", a.ID).Msg("user mirror upsert failed")
	}
}

// mapProviderErr converts provider outages into the service-level
// sentinel while keeping rejections (4xx) intact for the handler to
// translate.
func mapProviderErr(err error) error {
	var pe *auth.ProviderError
	if errors.As(err, &pe) {
		if pe.Temporary() {
			return errors.Join(ErrUpstreamAuth, err)
		}
		return err
	}
	// Network-level failures are outages too.
	return errors.Join(ErrUpstreamAuth, err)
}
