package booking

import (
	"errors"
	"fmt"
)

var (
	ErrClassNotFound      = errors.New("class not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNoBookings         = errors.New("no bookings found for user")
	ErrClassExists        = errors.New("class already exists")
	ErrAlreadyBooked      = errors.New("user already holds a booking or waitlist entry for this class")
	ErrInvalidClass       = errors.New("invalid class")
	ErrInvalidEntry       = errors.New("invalid booking entry")
	ErrInvariantViolation = errors.New("booking invariant violated")
	ErrStorage            = errors.New("storage failure")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
