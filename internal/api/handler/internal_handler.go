package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/datapulse/identity-api/internal/core/ports"
)

// InternalHandler serves the service-channel namespace. These routes are
// reached only through the ServiceAuth middleware, so no user principal
// exists here — callers are services, not people.
type InternalHandler struct {
	users ports.ClientUserService
}

func NewInternalHandler(users ports.ClientUserService) *InternalHandler {
	return &InternalHandler{users: users}
}

// UserByEmail looks up a client user by (URL-encoded) email for sibling
// services.
//
// @Summary      Get client user by email (internal)
// @Tags         internal
// @Produce      json
// @Param        email  path      string  true  "URL-encoded email"
// @Success      200    {object}  domain.ClientUser
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /internal/users/by-email/{email} [get]
func (h *InternalHandler) UserByEmail(c echo.Context) error {
	email, err := url.PathUnescape(c.Param("email"))
	if err != nil || email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if err := c.Validate(&struct {
		Email string `validate:"required,email"`
	}{Email: email}); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email format")
	}

	user, err := h.users.GetByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// RegisterUser creates a client user on behalf of a sibling service.
//
// @Summary      Register client user (internal)
// @Tags         internal
// @Accept       json
// @Produce      json
// @Param        body  body      userRegisterRequest  true  "Registration details"
// @Success      201   {object}  domain.ClientUser
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /internal/users/register [post]
func (h *InternalHandler) RegisterUser(c echo.Context) error {
	var req userRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Register(c.Request().Context(), ports.ClientUserRegistration{
		Email:              req.Email,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Phone:              req.Phone,
		Password:           req.Password,
		Type:               req.Type,
		EmailNotifications: notificationsOrDefault(req.EmailNotifications),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}
