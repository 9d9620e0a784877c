package services

import (
	"errors"
	"fmt"
)

// Sentinel error codes surfaced to controllers, matched with errors.Is.
var (
	ErrRoomNotFound        = errors.New("room_not_found")
	ErrRoomNotAvailable    = errors.New("room_not_available")
	ErrReservationNotFound = errors.New("reservation_not_found")
	ErrCustomerNotFound    = errors.New("customer_not_found")
	ErrPetNotFound         = errors.New("pet_not_found")
	ErrInvalidState        = errors.New("invalid_reservation_state")
)

// ValidationError names the missing or malformed field so the caller can show it verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Message)
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
