package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopapi/internal/auth"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct{}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// LoginResponse acknowledges a successful Basic-auth round trip.
type LoginResponse struct {
	Message  string   `json:"message"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Login godoc
// @Summary Verify credentials
// @Description Returns the resolved identity for the presented Basic credentials.
// @Tags auth
// @Produce json
// @Security BasicAuth
// @Success 200 {object} LoginResponse
// @Failure 401 {object} errors.MessageResponse
// @Router /login [get]
func (h *AuthHandler) Login(c echo.Context) error {
	identity := auth.FromContext(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(http.StatusOK, LoginResponse{
		Message:  "logged in",
		Username: identity.Username,
		Roles:    identity.Roles.Names(),
	})
}
