package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/datapulse/identity-api/internal/core/domain"
	"github.com/datapulse/identity-api/internal/core/ports"
)

// UserHandler exposes the client-user endpoints: self-service registration
// and profile management, plus the teammate-managed account administration.
type UserHandler struct {
	users ports.ClientUserService
}

func NewUserHandler(users ports.ClientUserService) *UserHandler {
	return &UserHandler{users: users}
}

type userRegisterRequest struct {
	Email              string `json:"email" validate:"required,email"`
	FirstName          string `json:"first_name" validate:"required"`
	LastName           string `json:"last_name" validate:"required"`
	Phone              string `json:"phone"`
	Password           string `json:"password" validate:"required,min=8"`
	Type               string `json:"type" validate:"omitempty,oneof=client partner"`
	EmailNotifications *bool  `json:"email_notifications"`
}

type userCreateRequest struct {
	Email              string `json:"email" validate:"required,email"`
	FirstName          string `json:"first_name" validate:"required"`
	LastName           string `json:"last_name" validate:"required"`
	Phone              string `json:"phone"`
	Type               string `json:"type" validate:"omitempty,oneof=client partner"`
	EmailNotifications *bool  `json:"email_notifications"`
}

type userUpdateRequest struct {
	FirstName          string `json:"first_name" validate:"required"`
	LastName           string `json:"last_name" validate:"required"`
	Phone              string `json:"phone"`
	EmailNotifications *bool  `json:"email_notifications"`
}

type setPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func notificationsOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

// Register self-registers a client user with a password.
//
// @Summary      Register a client user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      userRegisterRequest  true  "Registration details"
// @Success      201   {object}  domain.ClientUser
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
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

// Create adds a client user without a password on behalf of a teammate. The
// account cannot log in until the user claims it via set-password.
//
// @Summary      Create a client user (teammate-managed)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userCreateRequest  true  "Account details"
// @Success      201   {object}  domain.ClientUser
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req userCreateRequest
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
		Type:               req.Type,
		EmailNotifications: notificationsOrDefault(req.EmailNotifications),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// List returns all active client users.
//
// @Summary      List active client users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ClientUser
// @Failure      401  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.ClientUser{}
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one client user by id.
//
// @Summary      Get a client user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.ClientUser
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update replaces the mutable profile fields of a client user.
//
// @Summary      Update a client user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      userUpdateRequest  true  "Profile fields"
// @Success      200   {object}  domain.ClientUser
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req userUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), c.Param("id"), ports.ClientUserProfileUpdate{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Phone:              req.Phone,
		EmailNotifications: notificationsOrDefault(req.EmailNotifications),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete deactivates a client user. The record is kept; only the status
// changes, which also kills any outstanding tokens at next resolution.
//
// @Summary      Deactivate a client user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deactivated"})
}

// SetPassword claims a teammate-created account by setting its first
// password, and logs the user in.
//
// @Summary      Set initial password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      setPasswordRequest  true  "Email and new password"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/set-password [post]
func (h *UserHandler) SetPassword(c echo.Context) error {
	var req setPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, user, err := h.users.SetInitialPassword(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "password set successfully",
		"access":  pair.Access,
		"refresh": pair.Refresh,
		"user":    user,
	})
}

// Profile returns the authenticated client user's own record. A teammate
// token on this route gets a 404.
//
// @Summary      Client user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ClientUser
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := ctxClientUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated client user's own profile fields.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userUpdateRequest  true  "Profile fields"
// @Success      200   {object}  domain.ClientUser
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/me [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := ctxClientUser(c)
	if err != nil {
		return err
	}

	var req userUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), user.ID, ports.ClientUserProfileUpdate{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Phone:              req.Phone,
		EmailNotifications: notificationsOrDefault(req.EmailNotifications),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdatePassword rotates the authenticated client user's password.
//
// @Summary      Update own password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Current and new password"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/me/password [put]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	user, err := ctxClientUser(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.UpdatePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated successfully"})
}
