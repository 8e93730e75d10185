package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole rejects requests whose verified identity does not hold the
// named role. Must run after Auth; a request that reaches it without an
// identity is treated as unauthenticated, not forbidden.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !id.HasRole(role) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
