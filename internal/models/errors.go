package models

import "errors"

// Sentinel errors shared by all services. Handlers translate them into HTTP
// status codes in exactly one place, so every endpoint reports the same
// payload shape for the same class of failure.
var (
	// ErrValidation marks a missing or malformed input field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a record that does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an operation on a resource the caller has no access to.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict marks a write that would duplicate an existing record.
	ErrConflict = errors.New("conflict")
	// ErrPaymentPending marks a payment submission while another one is still pending.
	ErrPaymentPending = errors.New("payment pending")
	// ErrUnauthorized marks a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")
)
