package domain

import (
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/types"
)

// BusinessHoursPolicy is the daily window appointments must fit into
type BusinessHoursPolicy struct {
	Open  types.TimeString
	Close types.TimeString
}

// DurationBoundsPolicy limits the length of an appointment produced by a resize
type DurationBoundsPolicy struct {
	Min time.Duration
	Max time.Duration
}

// PickerPolicy describes the start-time options offered by the appointment form
// DayEnd is the last selectable start time (inclusive)
type PickerPolicy struct {
	DayStart    types.TimeString
	DayEnd      types.TimeString
	StepMinutes int
}

// SchedulingPolicy represents the scheduling rules for a salon
// Supports hierarchical configuration:
// 1. Resource-specific (salon_id, resource_id)
// 2. Salon-wide (salon_id, NULL)
// Service defaults from the configuration file apply when neither exists.
type SchedulingPolicy struct {
	ID              int64
	SalonID         string
	ResourceID      *string // NULL = policy for all resources of the salon
	BusinessHours   BusinessHoursPolicy
	DurationBounds  DurationBoundsPolicy
	Picker          PickerPolicy
	DurationOptions []int // minutes offered by the creation form
	IgnoreCancelled bool  // cancelled appointments do not block the slot
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsSalonWide returns true if the policy applies to every resource of the salon
func (p *SchedulingPolicy) IsSalonWide() bool {
	return p.ResourceID == nil
}

// IsResourceSpecific returns true if the policy overrides the salon policy for one resource
func (p *SchedulingPolicy) IsResourceSpecific() bool {
	return p.ResourceID != nil
}

// IsDefault returns true if the policy was not loaded from storage
func (p *SchedulingPolicy) IsDefault() bool {
	return p.ID == 0
}

// DefaultSchedulingPolicy returns the policy observed in production salons
func DefaultSchedulingPolicy() SchedulingPolicy {
	return SchedulingPolicy{
		BusinessHours: BusinessHoursPolicy{
			Open:  DefaultBusinessOpen,
			Close: DefaultBusinessClose,
		},
		DurationBounds: DurationBoundsPolicy{
			Min: DefaultMinDuration,
			Max: DefaultMaxDuration,
		},
		Picker: PickerPolicy{
			DayStart:    DefaultPickerDayStart,
			DayEnd:      DefaultPickerDayEnd,
			StepMinutes: DefaultPickerStepMinutes,
		},
		DurationOptions: append([]int(nil), DefaultDurationOptions...),
	}
}
