package scheduling

import (
	"errors"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

const (
	titleConflict   = "Conflitto di appuntamenti"
	titleValidation = "Validazione fallita"
	titleUpdated    = "Appuntamento aggiornato"
	titleCreated    = "Appuntamento creato"

	descConflict = "An appointment already exists in this time slot."
	descMoved    = "The appointment has been moved."
	descResized  = "The appointment has been resized."
	descCreated  = "The appointment has been created."
	descUpdated  = "The appointment has been updated."
	descNoActive = "The interaction was not started and has been discarded."
	descInvalid  = "The date, time or duration is not valid."
)

// Decision outcome labels
const (
	OutcomeAccepted           = "accepted"
	OutcomeConflict           = "conflict"
	OutcomeBusinessHours      = "out_of_business_hours"
	OutcomeDurationBounds     = "out_of_bounds_duration"
	OutcomeInvalidDuration    = "invalid_duration"
	OutcomeInvalidInterval    = "invalid_interval"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeNoInteraction      = "no_active_interaction"
	OutcomeInvalidInteraction = "invalid_interaction"
	OutcomeError              = "error"
)

// ConflictNotice is emitted when the slot is taken
func ConflictNotice() domain.Notice {
	return destructive(titleConflict, descConflict)
}

// MovedNotice is emitted after an accepted drag
func MovedNotice() domain.Notice {
	return success(titleUpdated, descMoved)
}

// ResizedNotice is emitted after an accepted resize
func ResizedNotice() domain.Notice {
	return success(titleUpdated, descResized)
}

// CreatedNotice is emitted after an appointment is created from the form
func CreatedNotice() domain.Notice {
	return success(titleCreated, descCreated)
}

// RescheduledNotice is emitted after the form changes an appointment's time
func RescheduledNotice() domain.Notice {
	return success(titleUpdated, descUpdated)
}

// NoticeFor maps a validation error to the destructive notice shown to the user.
// Messages naming policy values are rendered from p.
func NoticeFor(err error, p domain.SchedulingPolicy) domain.Notice {
	switch {
	case errors.Is(err, ErrSlotConflict):
		return ConflictNotice()
	case errors.Is(err, ErrOutOfBusinessHours):
		return destructive(titleValidation, businessHoursMessage(p.BusinessHours))
	case errors.Is(err, ErrOutOfBoundsDuration):
		return destructive(titleValidation, durationBoundsMessage(p.DurationBounds))
	case errors.Is(err, ErrInvalidInterval):
		return destructive(titleValidation, "end time must be after start time")
	case errors.Is(err, ErrInvalidDuration):
		return destructive(titleValidation, "duration must be one of: "+joinInts(p.DurationOptions)+" minutes")
	case errors.Is(err, ErrNoActiveInteraction):
		return destructive(titleValidation, descNoActive)
	default:
		return destructive(titleValidation, descInvalid)
	}
}

// Outcome returns the metrics label for a validation result
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeAccepted
	case errors.Is(err, ErrSlotConflict):
		return OutcomeConflict
	case errors.Is(err, ErrOutOfBusinessHours):
		return OutcomeBusinessHours
	case errors.Is(err, ErrOutOfBoundsDuration):
		return OutcomeDurationBounds
	case errors.Is(err, ErrInvalidDuration):
		return OutcomeInvalidDuration
	case errors.Is(err, ErrInvalidInterval):
		return OutcomeInvalidInterval
	case errors.Is(err, ErrInvalidTimeInput):
		return OutcomeInvalidInput
	case errors.Is(err, ErrNoActiveInteraction):
		return OutcomeNoInteraction
	case errors.Is(err, ErrInvalidInteraction):
		return OutcomeInvalidInteraction
	default:
		return OutcomeError
	}
}

func success(title, description string) domain.Notice {
	return domain.Notice{Title: title, Description: description, Variant: domain.NoticeSuccess}
}

func destructive(title, description string) domain.Notice {
	return domain.Notice{Title: title, Description: description, Variant: domain.NoticeDestructive}
}
