package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole allows only the given roles through. It must run after
// RequireLogin, which stores the token claims on the context.
func (g *Gate) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := Role(c)
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}
	}
}
