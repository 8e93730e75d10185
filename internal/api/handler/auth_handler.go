package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/invensys/inventory-api/internal/api/metrics"
	"github.com/invensys/inventory-api/internal/core/domain"
	"github.com/invensys/inventory-api/internal/core/ports"
)

// AuthHandler handles HTTP requests for registration, login and role
// assignment.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type assignRoleRequest struct {
	Username string `json:"username" validate:"required"`
	RoleName string `json:"roleName" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Roles: u.Roles}
}

// Register creates a new account holding ROLE_USER. No token is issued.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// AssignRole grants a role to a user. ADMIN only; enforced by the router.
//
// @Summary      Assign a role to a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignRoleRequest  true  "Assignment"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/assign-role [post]
func (h *AuthHandler) AssignRole(c echo.Context) error {
	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.AssignRole(c.Request().Context(), req.Username, req.RoleName)
	if err != nil {
		return err
	}

	metrics.RoleAssignmentsTotal.Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}
