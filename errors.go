package client

import (
	"errors"

	apierrors "github.com/workdesk/workdesk-client/internal/errors"
	"github.com/workdesk/workdesk-client/internal/shardqueue"
)

// APIError is the typed failure returned by every resource call.
type (
	APIError   = apierrors.APIError
	FieldError = apierrors.FieldError
	Category   = apierrors.Category
)

// Failure categories.
const (
	CategoryTransport    = apierrors.Transport
	CategoryUnauthorized = apierrors.Unauthorized
	CategoryForbidden    = apierrors.Forbidden
	CategoryValidation   = apierrors.Validation
	CategoryNotFound     = apierrors.NotFound
	CategoryServer       = apierrors.Server
)

var (
	// ErrNotAuthenticated is returned by operations that need a logged-in user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionReset is returned by Login when a forced logout or an explicit
	// Logout happened while the login was in flight.
	ErrSessionReset = errors.New("session reset during login")

	// ErrTokenExpired reports a stored JWT whose exp claim has passed.
	ErrTokenExpired = errors.New("stored token expired")

	// ErrBackPressure is returned when the background queue is full.
	ErrBackPressure = errors.New("back-pressure (queue full)")

	// ErrClosed is returned for background work submitted after Close.
	ErrClosed = errors.New("client closed")
)

// IsUnauthorized reports whether err is a 401 failure.
func IsUnauthorized(err error) bool { return apierrors.Is(err, apierrors.Unauthorized) }

// IsForbidden reports whether err is a role-insufficient 403.
func IsForbidden(err error) bool { return apierrors.Is(err, apierrors.Forbidden) }

// IsValidation reports whether err carries field validation errors.
func IsValidation(err error) bool { return apierrors.Is(err, apierrors.Validation) }

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool { return apierrors.Is(err, apierrors.NotFound) }

// IsTransport reports whether err is a network failure with no response.
func IsTransport(err error) bool { return apierrors.Is(err, apierrors.Transport) }

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// DisplayMessage returns the single string a form or toast should show for
// err, joining field-level validation errors.
func DisplayMessage(err error) string { return apierrors.Display(err) }

func mapSubmitError(err error) error {
	switch {
	case errors.Is(err, shardqueue.ErrQueueFull):
		return ErrBackPressure
	case errors.Is(err, shardqueue.ErrExecutorClosed):
		return ErrClosed
	default:
		return err
	}
}
