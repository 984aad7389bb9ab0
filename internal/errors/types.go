// Package errors provides the failure taxonomy shared by the resource clients.
// Every non-2xx response and every transport failure is surfaced to the caller
// as an *APIError; nothing in the SDK retries.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Category tells callers how a failure should be presented.
type Category int

const (
	// Transport covers network-level failures where no response arrived.
	Transport Category = iota
	// Unauthorized is a 401; the adapter has already forced a logout.
	Unauthorized
	// Forbidden is a role-insufficient 403, shown as an access-denied page.
	Forbidden
	// Validation carries field-level errors for the initiating form.
	Validation
	// NotFound is a 404.
	NotFound
	// Server is any other non-2xx status.
	Server
)

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case Transport:
		return "Transport"
	case Unauthorized:
		return "Unauthorized"
	case Forbidden:
		return "Forbidden"
	case Validation:
		return "Validation"
	case NotFound:
		return "NotFound"
	case Server:
		return "Server"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is the typed failure returned by every resource call.
type APIError struct {
	Operation  string
	Category   Category
	StatusCode int          // 0 for transport failures
	Message    string       // backend detail when it was a plain string
	Fields     []FieldError // backend detail when it was a list
	Body       string       // raw response body for debugging
	Underlying error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: [%s] HTTP %d: %s", e.Operation, e.Category, e.StatusCode, e.Display())
	}
	return fmt.Sprintf("%s: [%s] %v", e.Operation, e.Category, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *APIError) Unwrap() error {
	return e.Underlying
}

// Display renders the error the way a form or toast shows it: list-shaped
// details are joined into a single string.
func (e *APIError) Display() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			if f.Field == "" {
				parts = append(parts, f.Message)
				continue
			}
			parts = append(parts, f.Field+": "+f.Message)
		}
		return strings.Join(parts, ", ")
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Underlying != nil {
		return e.Underlying.Error()
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// CategoryOf returns the category of err, or false if err is not an *APIError.
func CategoryOf(err error) (Category, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Category, true
	}
	return 0, false
}

// Is reports whether err is an *APIError of the given category.
func Is(err error, c Category) bool {
	got, ok := CategoryOf(err)
	return ok && got == c
}

// Display returns the user-facing message for any error.
func Display(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Display()
	}
	return err.Error()
}
