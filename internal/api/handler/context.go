package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/datapulse/identity-api/internal/api/middleware"
	"github.com/datapulse/identity-api/internal/core/domain"
)

// ctxPrincipal extracts the principal resolved by the Auth middleware and
// fast-fails when a handler is reached without one.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p := middleware.Principal(c)
	if p == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}

// ctxTeammate narrows the resolved principal to a teammate. Routes that only
// make sense for the teammate store 404 for a client principal, mirroring the
// fact that the record genuinely is not in that store.
func ctxTeammate(c echo.Context) (*domain.Teammate, error) {
	p, err := ctxPrincipal(c)
	if err != nil {
		return nil, err
	}
	teammate, ok := p.(*domain.Teammate)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return teammate, nil
}

// ctxClientUser narrows the resolved principal to a client user.
func ctxClientUser(c echo.Context) (*domain.ClientUser, error) {
	p, err := ctxPrincipal(c)
	if err != nil {
		return nil, err
	}
	user, ok := p.(*domain.ClientUser)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
