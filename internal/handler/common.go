package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"shopapi/internal/errors"
	"shopapi/internal/model"
)

// UserProfile is the response shape for user reads and snapshots. Password
// carries the stored digest, never the plaintext; the exposure itself is kept
// for compatibility with the API's original contract.
type UserProfile struct {
	ID        uint     `json:"id"`
	Username  string   `json:"username"`
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Roles     []string `json:"roles,omitempty"`
}

func newUserProfile(user *model.User) UserProfile {
	return UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Email:     user.Email,
		Password:  user.PasswordHash,
		Roles:     user.RoleNames(),
	}
}

// respondError renders a domain error with the mapped status code. Errors
// pointing at a field render the validation body, the rest the generic one.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.Source != "" {
		return c.JSON(httpErr.StatusCode,
			errors.NewValidationResponse(traceID(c), httpErr.Message, httpErr.Source))
	}
	return c.JSON(httpErr.StatusCode, errors.MessageResponse{Message: httpErr.Message})
}

func traceID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return uuid.NewString()
}

// parseID reads the :id path parameter. A malformed id behaves like a missing
// row: no valid id could ever match it.
func parseID(c echo.Context, notFound error) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return 0, notFound
	}
	return uint(id), nil
}
