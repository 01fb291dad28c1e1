package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups when no entity matches.
var ErrNotFound = errors.New("entity not found")

// ErrUnauthorized indicates an invalid or expired tenant token (HTTP 401),
// or any whoami response that is not a clean 200.
var ErrUnauthorized = errors.New("unauthorized")

// ErrPermissionDenied indicates the token is valid but lacks the tenant
// privileges for the attempted operation (HTTP 403). Terminal; never retried.
var ErrPermissionDenied = errors.New("permission denied")

// APIError carries the HTTP status and response body of a failed catalog call.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: catalog returned %d: %s", e.Op, e.StatusCode, e.Body)
}

// Is maps status codes onto the sentinel errors so callers can use errors.Is
// without inspecting status codes themselves.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == 401
	case ErrPermissionDenied:
		return e.StatusCode == 403
	}
	return false
}
