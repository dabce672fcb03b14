// Session middleware.
//
// This file turns the auth provider's session cookie back into a request
// identity. The access token is a JWT issued by the provider; its
// signature is verified with the shared JWT secret and the subject claim
// becomes the userID context key. Requests without a valid session stay
// anonymous rather than being rejected: most of the API works for
// anonymous visitors, and endpoints that require an account enforce that
// themselves.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieAccessToken holds the provider access token (a JWT).
	CookieAccessToken = "sb-access-token"
	// CookieRefreshToken holds the provider refresh token.
	CookieRefreshToken = "sb-refresh-token"
)

// Session extracts the caller's identity from the access-token cookie or
// an Authorization bearer header.
//
// On a valid token it sets two Gin context keys:
//   - "userID":      the JWT subject (the provider account id)
//   - "accessToken": the raw token, for handlers that call the provider
//
// Invalid, expired or absent tokens leave both keys unset; the request
// proceeds as anonymous.
func Session(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearerOrCookie(c)
		if tok == "" {
			c.Next()
			return
		}

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !parsed.Valid {
			LoggerFrom(c).Debug().Err(err).Msg("session token rejected")
			c.Next()
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			c.Next()
			return
		}
		c.Set("userID", sub)
		c.Set("accessToken", tok)
		c.Next()
	}
}

// bearerOrCookie returns the access token from the Authorization header
// when present, otherwise from the session cookie.
func bearerOrCookie(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if v, err := c.Cookie(CookieAccessToken); err == nil {
		return v
	}
	return ""
}
