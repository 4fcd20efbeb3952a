package services

import "errors"

// Sentinel errors for the commerce flows. Handlers classify with
// errors.Is and map them to HTTP statuses.
var (
	// ErrValidation marks a missing or malformed user-supplied field.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks a role or ownership mismatch.
	ErrForbidden = errors.New("forbidden")
	// ErrEmptyCart rejects checkout when the user has no cart rows.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidTransition rejects an order status move the transition
	// table does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
)
