package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/glimmershop/catalog/internal/token"
)

type Gate struct {
	JWTSecret []byte
}

// RequireLogin rejects requests without a valid bearer token. A missing,
// malformed, and expired token all produce the same 401.
func (g *Gate) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}

		userID, role, err := token.Parse(raw, g.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}

		setUserContext(c, userID, role)
		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return header
}
