// Package auth guards the developer-only endpoints with a single static
// access token. There is no login flow; the dashboard pages are public and
// only refresh and diagnostics are protected.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/labstack/echo/v4"

	"github.com/byu-pathway/insights-backend/internal/shared"
)

// TokenHeader carries the developer token; the token query parameter is
// accepted as a fallback for browser-initiated downloads.
const TokenHeader = "X-Access-Token"

type Middleware struct {
	tokenHash [sha256.Size]byte
	enabled   bool
}

func NewMiddleware(token string) *Middleware {
	m := &Middleware{}
	if token != "" {
		m.tokenHash = sha256.Sum256([]byte(token))
		m.enabled = true
	}
	return m
}

// RequireToken rejects every request when no token is configured, so a
// missing DEV_ACCESS_TOKEN disables the endpoints instead of opening them.
func (m *Middleware) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.enabled {
			return shared.Forbidden("dev_endpoints_disabled", "developer endpoints are disabled on this deployment")
		}

		presented := c.Request().Header.Get(TokenHeader)
		if presented == "" {
			presented = c.QueryParam("token")
		}
		if presented == "" {
			return shared.Unauthorized("missing_token", "developer access token required")
		}

		h := sha256.Sum256([]byte(presented))
		if subtle.ConstantTimeCompare(h[:], m.tokenHash[:]) != 1 {
			return shared.Unauthorized("invalid_token", "developer access token rejected")
		}
		return next(c)
	}
}

func MiddlewareFunc(token string) echo.MiddlewareFunc {
	m := NewMiddleware(token)
	return m.RequireToken
}
