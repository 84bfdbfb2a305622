package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopapi/internal/auth"
	"shopapi/internal/errors"
	"shopapi/internal/service"
)

// UserHandler bundles user HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer over the user service.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// UpdateUserRequest represents a partial user update; omitted fields keep
// their current values.
type UpdateUserRequest struct {
	Username  *string `json:"username"`
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Password  *string `json:"password"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ValidationResponse
// @Failure 409 {object} errors.ValidationResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		Username:  req.Username,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, errors.MessageResponse{Message: "User was successfully created"})
}

// GetByUsername godoc
// @Summary Get user profile by username
// @Tags users
// @Produce json
// @Security BasicAuth
// @Param username path string true "Username"
// @Success 200 {object} UserProfile
// @Failure 401 {object} errors.MessageResponse
// @Failure 404 {object} errors.ValidationResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.svc.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newUserProfile(user))
}

// UpdateByUsername godoc
// @Summary Update own profile (or any profile as admin)
// @Tags users
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param username path string true "Username"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} UserProfile
// @Failure 403 {object} errors.MessageResponse
// @Failure 404 {object} errors.ValidationResponse
// @Failure 409 {object} errors.ValidationResponse
// @Router /users/{username} [put]
func (h *UserHandler) UpdateByUsername(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.UpdateByUsername(c.Request().Context(), auth.FromContext(c),
		c.Param("username"), updateInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newUserProfile(user))
}

// DeleteByUsername godoc
// @Summary Delete own account (or any account as admin)
// @Tags users
// @Produce json
// @Security BasicAuth
// @Param username path string true "Username"
// @Success 200 {object} UserProfile
// @Failure 403 {object} errors.MessageResponse
// @Failure 404 {object} errors.ValidationResponse
// @Router /users/{username} [delete]
func (h *UserHandler) DeleteByUsername(c echo.Context) error {
	user, err := h.svc.DeleteByUsername(c.Request().Context(), auth.FromContext(c), c.Param("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newUserProfile(user))
}

// List godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Success 200 {array} UserProfile
// @Failure 403 {object} errors.MessageResponse
// @Router /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	profiles := make([]UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, newUserProfile(&users[i]))
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetByID godoc
// @Summary Get user profile by id
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Param id path int true "User ID"
// @Success 200 {object} UserProfile
// @Failure 404 {object} errors.ValidationResponse
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := parseID(c, errors.ErrUserIDNotFound)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newUserProfile(user))
}

// UpdateByID godoc
// @Summary Update a user by id
// @Tags admin
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} UserProfile
// @Failure 404 {object} errors.ValidationResponse
// @Failure 409 {object} errors.ValidationResponse
// @Router /admin/users/{id} [put]
func (h *UserHandler) UpdateByID(c echo.Context) error {
	id, err := parseID(c, errors.ErrUserIDNotFound)
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.UpdateByID(c.Request().Context(), id, updateInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newUserProfile(user))
}

// DeleteByID godoc
// @Summary Delete a user by id
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Param id path int true "User ID"
// @Success 200 {object} UserProfile
// @Failure 404 {object} errors.ValidationResponse
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteByID(c echo.Context) error {
	id, err := parseID(c, errors.ErrUserIDNotFound)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.svc.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newUserProfile(user))
}

func updateInput(req UpdateUserRequest) service.UpdateUserInput {
	return service.UpdateUserInput{
		Username:  req.Username,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Password:  req.Password,
	}
}
