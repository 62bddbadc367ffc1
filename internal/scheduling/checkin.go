package scheduling

import (
	"errors"
	"fmt"
	"math"
	"time"

	"dailywag-backend/internal/domain/entity"
)

var (
	ErrCheckInNotConfirmed = errors.New("only confirmed bookings can be checked in")
	ErrCheckInTooEarly     = errors.New("check-in is not open yet")
	ErrCheckInMissed       = errors.New("check-in window has passed")
)

// CheckInError is a rejected check-in. WaitMinutes is set when the window
// has not opened yet.
type CheckInError struct {
	Reason      error
	WaitMinutes int
}

func (e *CheckInError) Error() string {
	if errors.Is(e.Reason, ErrCheckInTooEarly) {
		return fmt.Sprintf("%s, please wait %d more minute(s)", e.Reason, e.WaitMinutes)
	}
	return e.Reason.Error()
}

func (e *CheckInError) Unwrap() error {
	return e.Reason
}

// CheckInWindow returns the inclusive bounds in which a booking scheduled at
// scheduledAt may be checked in.
func CheckInWindow(scheduledAt time.Time) (opens, closes time.Time) {
	return scheduledAt.Add(-entity.CheckInOpensBefore), scheduledAt.Add(entity.CheckInClosesAfter)
}

// EvaluateCheckIn decides whether booking may be checked in at now. It
// returns nil or a *CheckInError and never mutates the booking.
func EvaluateCheckIn(booking *entity.Booking, now time.Time) error {
	if booking.Status != entity.BookingStatusConfirmed {
		return &CheckInError{Reason: ErrCheckInNotConfirmed}
	}

	opens, closes := CheckInWindow(booking.ScheduledAt)
	if now.Before(opens) {
		wait := int(math.Ceil(opens.Sub(now).Minutes()))
		return &CheckInError{Reason: ErrCheckInTooEarly, WaitMinutes: wait}
	}
	if now.After(closes) {
		return &CheckInError{Reason: ErrCheckInMissed}
	}
	return nil
}
