package scheduling

import (
	"fmt"
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// Validator bundles the policy, the availability checker and the salon
// location shared by every call site that changes an appointment's time
type Validator struct {
	Policy   domain.SchedulingPolicy
	Checker  Checker
	Location *time.Location
}

// NewValidator creates a Validator; cancelled handling follows the policy
func NewValidator(policy domain.SchedulingPolicy, loc *time.Location) *Validator {
	if loc == nil {
		loc = time.Local
	}
	return &Validator{
		Policy:   policy,
		Checker:  Checker{IgnoreCancelled: policy.IgnoreCancelled},
		Location: loc,
	}
}

// CheckPlacement validates a moved or created interval:
// interval validity, business hours, availability.
// On conflict the overlapping appointment is returned along with ErrSlotConflict.
func (v *Validator) CheckPlacement(c Candidate, existing []*domain.Appointment) (*domain.Appointment, error) {
	if err := ValidateInterval(c.Start, c.End); err != nil {
		return nil, err
	}
	if err := CheckBusinessHours(v.Policy.BusinessHours, c.Start, c.End, v.Location); err != nil {
		return nil, err
	}
	return v.checkAvailability(c, existing)
}

// CheckResize validates a resized interval:
// interval validity, duration bounds, business hours, availability
func (v *Validator) CheckResize(c Candidate, existing []*domain.Appointment) (*domain.Appointment, error) {
	if err := ValidateInterval(c.Start, c.End); err != nil {
		return nil, err
	}
	if err := CheckDurationBounds(v.Policy.DurationBounds, c.Duration()); err != nil {
		return nil, err
	}
	if err := CheckBusinessHours(v.Policy.BusinessHours, c.Start, c.End, v.Location); err != nil {
		return nil, err
	}
	return v.checkAvailability(c, existing)
}

// CheckForm validates form input: the duration must be a picker option,
// then the same rules as CheckPlacement apply
func (v *Validator) CheckForm(c Candidate, durationMinutes int, existing []*domain.Appointment) (*domain.Appointment, error) {
	if err := CheckDurationOption(v.Policy.DurationOptions, durationMinutes); err != nil {
		return nil, err
	}
	return v.CheckPlacement(c, existing)
}

func (v *Validator) checkAvailability(c Candidate, existing []*domain.Appointment) (*domain.Appointment, error) {
	if conflict := v.Checker.FindConflict(c, existing); conflict != nil {
		return conflict, fmt.Errorf("%w: overlaps appointment %s", ErrSlotConflict, conflict.ID)
	}
	return nil, nil
}
