package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when a request carries no valid session.
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrProfileNotFound is returned when the CMS holds no profile for the user.
	ErrProfileNotFound = errors.New("User not found")
	// ErrInvalidTheme is returned when a theme outside light/dark/system is requested.
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrInvalidLocale is returned when an unsupported locale is requested.
	ErrInvalidLocale = errors.New("invalid locale")
	// ErrCMSUnavailable is returned when the CMS cannot be reached or answers unexpectedly.
	ErrCMSUnavailable = errors.New("cms unavailable")
	// ErrSessionRevoked is returned when a session was signed out before its token expired.
	ErrSessionRevoked = errors.New("session revoked")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are unwrapped.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrSessionRevoked):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrProfileNotFound):
		return NewHTTPError(http.StatusNotFound, ErrProfileNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidTheme):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_THEME")
	case errors.Is(err, ErrInvalidLocale):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_LOCALE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}

// IsServerError reports whether err maps to a 5xx response.
func IsServerError(err error) bool {
	return MapErrorToHTTP(err).StatusCode >= http.StatusInternalServerError
}
