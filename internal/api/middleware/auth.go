package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/invensys/inventory-api/internal/core/ports"
)

const identityKey = "identity"

// Identity is the verified caller attached to the request context by Auth.
// It is read-only for the rest of the request lifecycle.
type Identity struct {
	Username string
	Roles    []string
}

// HasRole reports whether the identity's role claim contains name.
func (i Identity) HasRole(name string) bool {
	for _, r := range i.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Auth extracts and verifies the bearer token, then injects the caller's
// identity into the request context. Signature and expiry failures produce
// the same 401 response so a forged token cannot be told apart from a stale
// one.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(strings.TrimSpace(parts[1]), time.Now().UTC())
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(identityKey, Identity{Username: claims.Subject, Roles: claims.Roles})
			return next(c)
		}
	}
}

// IdentityFrom returns the identity injected by Auth, if any.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}
