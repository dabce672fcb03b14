// Package auth wraps the external authentication provider behind a small
// gateway interface. The application never implements credential
// handling itself: sign-up, sign-in, password recovery and account
// deletion are delegated to the provider's REST API, and the rest of the
// codebase only sees the Provider interface and its value types.
package auth

import "context"

// Account is the provider-side user record, reduced to the fields this
// application consumes.
type Account struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Session is an authenticated provider session: the bearer tokens plus
// the account they belong to.
type Session struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int     `json:"expires_in"`
	User         Account `json:"user"`
}

// ProfileUpdate carries the mutable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Username  *string
	AvatarURL *string
}

// Provider is the gateway to the external auth service. Implementations
// must be safe for concurrent use.
type Provider interface {
	// SignUp registers a new account and returns the initial session.
	SignUp(ctx context.Context, email, password string) (*Session, error)

	// SignIn exchanges credentials for a session.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignOut revokes the session behind accessToken.
	SignOut(ctx context.Context, accessToken string) error

	// GetUser resolves the account behind accessToken.
	GetUser(ctx context.Context, accessToken string) (*Account, error)

	// UpdateUser applies a profile update to the account behind
	// accessToken.
	UpdateUser(ctx context.Context, accessToken string, upd ProfileUpdate) (*Account, error)

	// DeleteUser removes the provider account. Requires the service
	// role key; the caller is responsible for removing local data.
	DeleteUser(ctx context.Context, userID string) error

	// ResetPassword triggers the provider's password recovery mail. It
	// must not reveal whether the address is registered.
	ResetPassword(ctx context.Context, email string) error
}
