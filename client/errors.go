package client

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnauthorized is returned for any 401. The session has already been
// cleared (and its OnUnauthorized hook invoked) when a caller sees it.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError is a local precondition failure: no network call was made
// and retrying with corrected input is always possible.
type ValidationError struct {
	Violations map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for field, reason := range e.Violations {
		parts = append(parts, field+": "+reason)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, ", ")
}

func validationErr(field, reason string) *ValidationError {
	return &ValidationError{Violations: map[string]string{field: reason}}
}

// APIError is a non-2xx response. Message carries the server's error code or
// message verbatim when the body had one, else a generic fallback.
type APIError struct {
	StatusCode int
	Message    string
	Details    any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}
