package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/datapulse/identity-api/internal/api/metrics"
	"github.com/datapulse/identity-api/internal/core/domain"
	"github.com/datapulse/identity-api/internal/core/ports"
)

// PrincipalContextKey is where Auth stores the resolved principal in the echo
// context. Handlers receive the principal explicitly through this key; there
// is no ambient current-user global.
const PrincipalContextKey = "principal"

// Auth validates the bearer access token and injects the re-resolved live
// principal into the request context. Every failure is a plain 401; the
// reasons only show up in logs and metrics.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				metrics.TokenResolutionsTotal.WithLabelValues("invalid").Inc()
				return err
			}

			principal, err := auth.ResolveAccess(c.Request().Context(), raw)
			if err != nil {
				metrics.TokenResolutionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			metrics.TokenResolutionsTotal.WithLabelValues("ok").Inc()
			c.Set(PrincipalContextKey, principal)
			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

// Principal returns the principal resolved by Auth, or nil when the
// middleware did not run on this route.
func Principal(c echo.Context) domain.Principal {
	p, _ := c.Get(PrincipalContextKey).(domain.Principal)
	return p
}
