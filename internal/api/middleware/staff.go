package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/datapulse/identity-api/internal/core/domain"
)

// RequireTeammate lets only teammate principals through. Runs after Auth.
func RequireTeammate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if p.Kind() != domain.KindTeammate {
				return echo.NewHTTPError(http.StatusForbidden, "teammate access required")
			}
			return next(c)
		}
	}
}

// RequireStaff lets only admin or superuser teammates through. Runs after Auth.
func RequireStaff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			teammate, ok := p.(*domain.Teammate)
			if !ok || !teammate.IsStaff() {
				return echo.NewHTTPError(http.StatusForbidden, "staff access required")
			}
			return next(c)
		}
	}
}
