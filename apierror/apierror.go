// Package apierror defines the error taxonomy surfaced by the controller
// layer. Errors carry an HTTP status and bubble unchanged through the
// dispatch adapter; translation to transport responses happens only at the
// host-engine edge.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an API-facing error with a transport status.
type Error struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an API error with an explicit status and code.
func New(statusCode int, code, message string) *Error {
	return &Error{StatusCode: statusCode, Code: code, Message: message}
}

func BadRequest(message string) *Error {
	if message == "" {
		message = "Malformed request."
	}
	return New(http.StatusBadRequest, "BAD_REQUEST", message)
}

func AuthenticationFailed(message string) *Error {
	if message == "" {
		message = "Incorrect authentication credentials."
	}
	return New(http.StatusUnauthorized, "AUTHENTICATION_FAILED", message)
}

func PermissionDenied(message string) *Error {
	if message == "" {
		message = "You do not have permission to perform this action."
	}
	return New(http.StatusForbidden, "PERMISSION_DENIED", message)
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Not found."
	}
	return New(http.StatusNotFound, "NOT_FOUND", message)
}

func MethodNotAllowed(message string) *Error {
	if message == "" {
		message = "Method not allowed."
	}
	return New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", message)
}

// StatusOf extracts the transport status from an error chain, defaulting to
// 500 for anything that is not an API error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
