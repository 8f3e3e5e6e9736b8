package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/datapulse/identity-api/internal/core/ports"
)

// TeammateHandler exposes the internal staff account endpoints.
type TeammateHandler struct {
	teammates ports.TeammateService
}

func NewTeammateHandler(teammates ports.TeammateService) *TeammateHandler {
	return &TeammateHandler{teammates: teammates}
}

type teammateRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin developer"`
}

// Register creates a teammate account. Superuser teammates cannot be created
// here; an omitted role defaults to developer.
//
// @Summary      Register a teammate
// @Tags         teammates
// @Accept       json
// @Produce      json
// @Param        body  body      teammateRegisterRequest  true  "Teammate registration details"
// @Success      201   {object}  domain.Teammate
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /teammates/register [post]
func (h *TeammateHandler) Register(c echo.Context) error {
	var req teammateRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	teammate, err := h.teammates.Register(c.Request().Context(), ports.TeammateRegistration{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, teammate)
}

// Me returns the authenticated teammate's own record. A client-user token on
// this route gets a 404: the id does not exist in the teammate store.
//
// @Summary      Teammate profile
// @Tags         teammates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Teammate
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /teammates/me [get]
func (h *TeammateHandler) Me(c echo.Context) error {
	teammate, err := ctxTeammate(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teammate)
}
