package services

import "errors"

// Sentinel errors surfaced by the services. Each maps to a distinct HTTP
// status in the handlers so callers can tell business failures apart from
// storage failures.
var (
	// ErrInsufficientPoints is returned when a redemption is attempted
	// with a balance below the configured cost. Nothing is mutated.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrItemNotFound is returned when a referenced item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemNotActive is returned when the target item is not available
	// for the requested transition.
	ErrItemNotActive = errors.New("item not available")

	// ErrNotAuthorized is returned when the acting user lacks the
	// privilege required for the operation.
	ErrNotAuthorized = errors.New("admin access required")

	// ErrInvalidEarnKind is returned when Earn is called with a kind the
	// engine does not award directly.
	ErrInvalidEarnKind = errors.New("unsupported earn kind")

	// ErrCategoryExists is returned when a category with the same name
	// already exists.
	ErrCategoryExists = errors.New("category already exists")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidFile is returned when an upload fails validation.
	ErrInvalidFile = errors.New("invalid file")
)
