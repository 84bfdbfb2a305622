package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidEmail is returned when an email address has no "@".
	ErrInvalidEmail = errors.New("please, enter valid email address")
	// ErrWeakPassword is returned when a password is shorter than 8 characters.
	ErrWeakPassword = errors.New("password must be at least 8 characters long")
	// ErrInvalidUsername is returned when a username is all digits.
	ErrInvalidUsername = errors.New("username must not be numeric")
	// ErrUsernameTaken is returned when the requested username already exists.
	ErrUsernameTaken = errors.New("user with such username already exists")
	// ErrUserNotFound is returned when no user matches the given username.
	ErrUserNotFound = errors.New("user with such username does not exist")
	// ErrUserIDNotFound is returned when no user matches the given id.
	ErrUserIDNotFound = errors.New("user with such id does not exist")
	// ErrProductNotFound is returned when no product matches the given id.
	ErrProductNotFound = errors.New("product with such id does not exist")
	// ErrConflict is returned when a unique constraint rejects a write.
	ErrConflict = errors.New("name or description is already taken")
	// ErrRoleNotFound is returned when a reference role is missing from the store.
	ErrRoleNotFound = errors.New("role not found")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthenticated is returned when a request carries no valid identity.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when an identity lacks the required role.
	ErrForbidden = errors.New("no permission")
)

// Request-body and path-parameter pointers used in validation responses.
const (
	SourceEmail    = "Field 'email' in the request body."
	SourcePassword = "Field 'password' in the request body."
	SourceUsername = "Field 'username' in the request body."
	SourceID       = "Field 'id' in path parameters."
)

// FieldError points a failure message at the offending field.
type FieldError struct {
	Message string `json:"message"`
	Source  string `json:"source"`
}

// ValidationResponse is the body shape for field-level failures.
type ValidationResponse struct {
	Errors  []FieldError `json:"errors"`
	TraceID string       `json:"traceId"`
}

// MessageResponse is the body shape for generic failures and confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewValidationResponse builds a single-field validation body.
func NewValidationResponse(traceID, message, source string) ValidationResponse {
	return ValidationResponse{
		Errors:  []FieldError{{Message: message, Source: source}},
		TraceID: traceID,
	}
}

// HTTPError carries a mapped status code plus an optional field source.
type HTTPError struct {
	StatusCode int
	Message    string
	Source     string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// MapErrorToHTTP maps domain errors to HTTP errors. Errors with a non-empty
// Source render as a ValidationResponse, the rest as a MessageResponse.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return &HTTPError{http.StatusBadRequest, err.Error(), SourceEmail}
	case errors.Is(err, ErrWeakPassword):
		return &HTTPError{http.StatusBadRequest, err.Error(), SourcePassword}
	case errors.Is(err, ErrInvalidUsername):
		return &HTTPError{http.StatusBadRequest, err.Error(), SourceUsername}
	case errors.Is(err, ErrUsernameTaken):
		return &HTTPError{http.StatusConflict, err.Error(), SourceUsername}
	case errors.Is(err, ErrUserNotFound):
		return &HTTPError{http.StatusNotFound, err.Error(), SourceUsername}
	case errors.Is(err, ErrUserIDNotFound):
		return &HTTPError{http.StatusNotFound, err.Error(), SourceID}
	case errors.Is(err, ErrProductNotFound):
		return &HTTPError{http.StatusNotFound, err.Error(), SourceID}
	case errors.Is(err, ErrConflict):
		return &HTTPError{http.StatusConflict, err.Error(), ""}
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthenticated):
		return &HTTPError{http.StatusUnauthorized, err.Error(), ""}
	case errors.Is(err, ErrForbidden):
		return &HTTPError{http.StatusForbidden, err.Error(), ""}
	default:
		return &HTTPError{http.StatusInternalServerError, "internal server error", ""}
	}
}
