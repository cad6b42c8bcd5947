package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the booking/payment lifecycle. Controllers map these
// to HTTP status codes; services wrap them with %w so errors.Is works
// across layers.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrSignatureMismatch = errors.New("payment signature mismatch")
	ErrPaymentIncomplete = errors.New("payment not completed")
	ErrAlreadyConfirmed  = errors.New("booking already confirmed")
	ErrDuplicate         = errors.New("duplicate submission")
)

// ValidationError reports a missing or invalid request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GatewayError wraps a failed remote call to a payment processor.
type GatewayError struct {
	Gateway string
	Op      string
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Gateway, e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError wraps a remote gateway failure
func NewGatewayError(gateway, op string, err error) *GatewayError {
	return &GatewayError{Gateway: gateway, Op: op, Err: err}
}

// IsGateway reports whether err is a GatewayError
func IsGateway(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}

// DataError reports missing participant data discovered during invoice
// generation. It stays inside the dispatch pipeline and is never
// surfaced to the payer.
type DataError struct {
	BookingID string
	Message   string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("invoice data error for booking %s: %s", e.BookingID, e.Message)
}

// NewDataError creates a data error for a booking
func NewDataError(bookingID, message string) *DataError {
	return &DataError{BookingID: bookingID, Message: message}
}
