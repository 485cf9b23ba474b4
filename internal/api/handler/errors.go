package handler

import (
	"net/http"

	"github.com/bartdebruin-tp/matchmaker/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeUnauthenticated    = apierr.CodeUnauthenticated
	CodePlayerNotFound     = apierr.CodePlayerNotFound
	CodeGroupNotFound      = apierr.CodeGroupNotFound
	CodeSubPageNotFound    = apierr.CodeSubPageNotFound
	CodeEmailExists        = apierr.CodeEmailExists
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeNotFound           = apierr.CodeNotFound
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewNotFoundError creates a generic not-found error
func NewNotFoundError(message string) error {
	return apierr.NewNotFoundError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
