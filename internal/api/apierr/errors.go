package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bartdebruin-tp/matchmaker/internal/auth"
	"github.com/bartdebruin-tp/matchmaker/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGroupNotFound      = "GROUP_NOT_FOUND"
	CodeSubPageNotFound    = "SUBPAGE_NOT_FOUND"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthenticated, "Sign in required"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGroupNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGroupNotFound, "Group not found"}}
	case errors.Is(err, model.ErrSubPageNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSubPageNotFound, "Sub-page not found"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid email or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthenticated, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrEmailExists):
		return &httpError{http.StatusConflict, APIError{CodeEmailExists, "Email already registered"}}

	default:
		// Remote store failures land here; they propagate unchanged
		// from the stores with no sentinel to match on.
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthenticatedError creates an authentication-required error
func NewUnauthenticatedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthenticated, "Authentication required"}}
}

// NewNotFoundError creates a generic not-found error
func NewNotFoundError(message string) error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
