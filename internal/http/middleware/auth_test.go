package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "super-secret-signing-key"

func signToken(t *testing.T, secret, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func sessionRouter() (*gin.Engine, *struct{ userID, accessToken string }) {
	gin.SetMode(gin.TestMode)
	seen := &struct{ userID, accessToken string }{}
	r := gin.New()
	r.Use(Session(testSecret))
	r.GET("/whoami", func(c *gin.Context) {
		if v, ok := c.Get("userID"); ok {
			seen.userID, _ = v.(string)
		}
		if v, ok := c.Get("accessToken"); ok {
			seen.accessToken, _ = v.(string)
		}
		c.Status(http.StatusOK)
	})
	return r, seen
}

func TestSession_ValidCookieSetsIdentity(t *testing.T) {
	r, seen := sessionRouter()
	tok := signToken(t, testSecret, "user-1", time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if seen.userID != "user-1" {
		t.Fatalf("userID not set, got %q", seen.userID)
	}
	if seen.accessToken != tok {
		t.Fatalf("accessToken not propagated")
	}
}

func TestSession_BearerHeaderWins(t *testing.T) {
	r, seen := sessionRouter()
	headerTok := signToken(t, testSecret, "header-user", time.Now().Add(time.Hour))
	cookieTok := signToken(t, testSecret, "cookie-user", time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+headerTok)
	req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: cookieTok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if seen.userID != "header-user" {
		t.Fatalf("expected header token to win, got %q", seen.userID)
	}
}

func TestSession_InvalidTokensStayAnonymous(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong key", signTokenStatic("other-secret", "user-1", time.Now().Add(time.Hour))},
		{"expired", signTokenStatic(testSecret, "user-1", time.Now().Add(-time.Hour))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, seen := sessionRouter()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: tc.token})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("anonymous request must pass through, got %d", w.Code)
			}
			if seen.userID != "" {
				t.Fatalf("identity must not be set, got %q", seen.userID)
			}
		})
	}
}

func TestSession_NoTokenStaysAnonymous(t *testing.T) {
	r, seen := sessionRouter()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || seen.userID != "" {
		t.Fatalf("expected anonymous pass-through, got %d %q", w.Code, seen.userID)
	}
}

// signTokenStatic mirrors signToken for table literals where *testing.T
// is not yet available.
func signTokenStatic(secret, sub string, exp time.Time) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	s, _ := tok.SignedString([]byte(secret))
	return s
}
