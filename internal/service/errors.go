package service

import (
	"errors"
	"fmt"
	"time"

	"bikerental/internal/interval"
)

var (
	ErrBikeNotFound       = errors.New("bike not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidWindow      = errors.New("end time must be after start time")
	ErrForbidden          = errors.New("access denied")
	ErrAlreadyStarted     = errors.New("cannot cancel a booking that has already started")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ConflictError rejects a booking request whose window overlaps an
// existing confirmed booking. Window is the existing booking's window,
// so callers can tell the user which slot is taken.
type ConflictError struct {
	Window interval.Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("bike is not available between %s and %s",
		e.Window.Start.Format(time.RFC3339), e.Window.End.Format(time.RFC3339))
}
