package services

import (
	"errors"
	"fmt"
)

// Sentinel errors the controllers translate into the HTTP taxonomy.
// Business-rule failures never leave the service layer as anything else.
var (
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrItemNotFound       = errors.New("inventory item not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicate          = errors.New("duplicate record")
)

// InvalidStateError rejects a customer-side mutation of a booking that
// has left Pending. The blocking status is carried so the client is
// told exactly why.
type InvalidStateError struct {
	Status string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("booking status is %s, only Pending bookings can be changed", e.Status)
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}
