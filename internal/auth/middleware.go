package auth

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	apperrors "shopapi/internal/errors"
	"shopapi/internal/logger"
)

const identityKey = "identity"

// BasicAuth returns the credential-resolution middleware stage. Valid
// credentials store the resolved Identity in the request context; invalid or
// missing credentials end the request with 401 before any handler runs.
func BasicAuth(a *Authenticator) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			identity, err := a.Authenticate(c.Request().Context(), username, password)
			if err != nil {
				if errors.Is(err, apperrors.ErrInvalidCredentials) {
					return false, nil
				}
				logger.Log.Errorw("authentication failed", "username", username, "err", err)
				return false, err
			}
			c.Set(identityKey, identity)
			return true, nil
		},
	})
}

// RequireRoles returns the role-requirement middleware stage. It authorizes
// the context identity against the given roles and short-circuits denials
// with no store access and no side effects.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := Authorize(FromContext(c), roles...); err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
			}
			return next(c)
		}
	}
}

// FromContext returns the identity resolved by BasicAuth, or nil on public
// routes and failed authentication.
func FromContext(c echo.Context) *Identity {
	identity, _ := c.Get(identityKey).(*Identity)
	return identity
}
