package scheduling

import "errors"

var (
	// ErrInvalidTimeInput malformed date, time of day or duration
	ErrInvalidTimeInput = errors.New("scheduling: invalid time input")
	// ErrSlotConflict the candidate interval overlaps an existing appointment
	ErrSlotConflict = errors.New("scheduling: slot conflict")
	// ErrOutOfBoundsDuration the resized duration is outside the configured bounds
	ErrOutOfBoundsDuration = errors.New("scheduling: duration out of bounds")
	// ErrOutOfBusinessHours the interval is not inside the business-hours window
	ErrOutOfBusinessHours = errors.New("scheduling: outside business hours")
	// ErrInvalidInterval start is not strictly before end
	ErrInvalidInterval = errors.New("scheduling: end time must be after start time")
	// ErrInvalidDuration the duration is not one of the picker options
	ErrInvalidDuration = errors.New("scheduling: duration is not an allowed option")
	// ErrNoActiveInteraction End* was called without a matching Begin*
	ErrNoActiveInteraction = errors.New("scheduling: no active interaction")
	// ErrInteractionInProgress Begin* was called while another interaction is active
	ErrInteractionInProgress = errors.New("scheduling: another interaction is in progress")
	// ErrInvalidInteraction the interaction payload is incomplete
	ErrInvalidInteraction = errors.New("scheduling: invalid interaction")
	// ErrInvalidPolicy the scheduling policy is inconsistent
	ErrInvalidPolicy = errors.New("scheduling: invalid policy")
)
