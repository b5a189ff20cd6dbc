package scheduling

import (
	"errors"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// RejectionError carries the notice of a rejected change together with the cause.
// errors.Is still matches the underlying sentinel.
type RejectionError struct {
	Err      error
	Notice   domain.Notice
	Conflict *domain.Appointment
}

// Reject wraps a validation error with the notice rendered from p
func Reject(err error, p domain.SchedulingPolicy, conflict *domain.Appointment) *RejectionError {
	return &RejectionError{Err: err, Notice: NoticeFor(err, p), Conflict: conflict}
}

func (e *RejectionError) Error() string {
	return e.Err.Error()
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

// AsRejection extracts the RejectionError from err's chain
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// IsValidationError reports whether err is a scheduling rule violation
// rather than an infrastructure failure
func IsValidationError(err error) bool {
	switch Outcome(err) {
	case OutcomeAccepted, OutcomeError:
		return false
	default:
		return true
	}
}
