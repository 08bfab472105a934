package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase layers
var (
	// Provider errors
	ErrProviderNotFound = errors.New("provider not found")

	// Slot errors
	ErrSlotUnavailable = errors.New("slot is not available")

	// Booking errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrForbidden        = errors.New("booking does not belong to user")
	ErrBookingCancelled = errors.New("booking is cancelled")

	// Payment errors
	ErrSignatureMismatch  = errors.New("payment signature mismatch")
	ErrAmountMismatch     = errors.New("amount does not match booking price")
	ErrGatewayUnavailable = errors.New("payment gateway not configured")
	ErrGatewayFailure     = errors.New("payment gateway request failed")

	// Validation errors
	ErrValidation = errors.New("validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
