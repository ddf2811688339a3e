package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrSlotAlreadyBooked  = errors.New("time slot is already booked")
	ErrInvoiceAlreadyPaid = errors.New("invoice is already paid")
)

// BackendError - ответ бэкенда с неуспешным статусом
type BackendError struct {
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

func (e *BackendError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}
