package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// ProviderError is returned when the auth provider rejects a request. It
// carries the upstream HTTP status and the provider's message so the
// caller can distinguish bad credentials (4xx) from provider outages
// (5xx).
type ProviderError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("auth provider: %d %s", e.Status, e.Message)
}

// Temporary reports whether the failure looks like a provider outage
// rather than a rejected request.
func (e *ProviderError) Temporary() bool { return e.Status >= 500 }

// HTTPProvider implements Provider against a GoTrue-compatible REST API.
type HTTPProvider struct {
	// BaseURL is the provider root, e.g. https://auth.example.dk/auth/v1.
	BaseURL string
	// AnonKey is the public API key sent on every request.
	AnonKey string
	// ServiceKey is the privileged key used for admin operations
	// (account deletion). Never exposed to clients.
	ServiceKey string
	// Client is the HTTP client; a sane default is applied when nil.
	Client *http.Client
}

// NewHTTPProvider builds an HTTPProvider with a 10s timeout client.
func NewHTTPProvider(baseURL, anonKey, serviceKey string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL:    baseURL,
		AnonKey:    anonKey,
		ServiceKey: serviceKey,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPProvider) httpClient() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return http.DefaultClient
}

// do sends one request to the provider. bearer is the Authorization
// token ("" sends the anon key as bearer, which GoTrue accepts for
// unauthenticated endpoints). When out is non-nil the response body is
// decoded into it.
func (p *HTTPProvider) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode auth request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.BaseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("apikey", p.AnonKey)
	if bearer == "" {
		bearer = p.AnonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("auth provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var pe struct {
			Msg     string `json:"msg"`
			Message string `json:"message"`
			Error   string `json:"error_description"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&pe)
		msg := pe.Msg
		if msg == "" {
			msg = pe.Message
		}
		if msg == "" {
			msg = pe.Error
		}
		log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("auth provider rejected request")
		return &ProviderError{Status: resp.StatusCode, Message: msg}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode auth response: %w", err)
		}
	}
	return nil
}

// SignUp implements Provider.
func (p *HTTPProvider) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := p.do(ctx, http.MethodPost, "/signup", "", map[string]string{
		"email":    email,
		"password": password,
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SignIn implements Provider via the password grant.
func (p *HTTPProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := p.do(ctx, http.MethodPost, "/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SignOut implements Provider.
func (p *HTTPProvider) SignOut(ctx context.Context, accessToken string) error {
	return p.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

// GetUser implements Provider.
func (p *HTTPProvider) GetUser(ctx context.Context, accessToken string) (*Account, error) {
	var a Account
	if err := p.do(ctx, http.MethodGet, "/user", accessToken, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateUser implements Provider. Profile fields live in the provider's
// free-form user metadata object.
func (p *HTTPProvider) UpdateUser(ctx context.Context, accessToken string, upd ProfileUpdate) (*Account, error) {
	data := map[string]any{}
	if upd.Username != nil {
		data["username"] = *upd.Username
	}
	if upd.AvatarURL != nil {
		data["avatar_url"] = *upd.AvatarURL
	}
	var a Account
	err := p.do(ctx, http.MethodPut, "/user", accessToken, map[string]any{"data": data}, &a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteUser implements Provider using the admin API with the service
// role key.
func (p *HTTPProvider) DeleteUser(ctx context.Context, userID string) error {
	return p.do(ctx, http.MethodDelete, "/admin/users/"+userID, p.ServiceKey, nil, nil)
}

// ResetPassword implements Provider.
func (p *HTTPProvider) ResetPassword(ctx context.Context, email string) error {
	return p.do(ctx, http.MethodPost, "/recover", "", map[string]string{"email": email}, nil)
}
