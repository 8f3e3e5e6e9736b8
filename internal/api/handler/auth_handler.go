package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/datapulse/identity-api/internal/api/metrics"
	"github.com/datapulse/identity-api/internal/core/domain"
	"github.com/datapulse/identity-api/internal/core/ports"
)

// AuthHandler exposes the unified login/refresh/profile endpoints backed by
// both principal stores.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Access   string      `json:"access"`
	Refresh  string      `json:"refresh"`
	Kind     domain.Kind `json:"kind"`
	Teammate any         `json:"teammate,omitempty"`
	User     any         `json:"user,omitempty"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// Login authenticates a credential pair against both principal stores and
// returns a token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, principal, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("none", loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues(string(principal.Kind()), "ok").Inc()

	resp := loginResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		Kind:    principal.Kind(),
	}
	switch v := principal.(type) {
	case *domain.Teammate:
		resp.Teammate = v
	case *domain.ClientUser:
		resp.User = v
	}
	return c.JSON(http.StatusOK, resp)
}

func loginResult(err error) string {
	if err == domain.ErrTooManyLoginAttempts {
		return "throttled"
	}
	return "invalid_credentials"
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself stays valid and is not rotated.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  refreshResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/token/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	access, err := h.authService.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("invalid").Inc()
		return err
	}
	metrics.RefreshesTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, refreshResponse{Access: access})
}

// Me returns the profile of whichever principal the access token resolves to.
//
// @Summary      Current principal profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  principalView
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewPrincipal(principal))
}

// Validate confirms a live access token for sibling services and reports the
// principal it resolves to.
//
// @Summary      Validate access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /auth/token/validate [get]
func (h *AuthHandler) Validate(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"valid":     true,
		"principal": viewPrincipal(principal),
	})
}
