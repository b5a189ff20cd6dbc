package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// CheckBusinessHours returns ErrOutOfBusinessHours unless both ends fall on the
// same local date and Open <= start, end <= Close
func CheckBusinessHours(hours domain.BusinessHoursPolicy, start, end time.Time, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	start, end = start.In(loc), end.In(loc)

	openAt, err := hours.Open.On(start, loc)
	if err != nil {
		return fmt.Errorf("%w: open: %v", ErrInvalidPolicy, err)
	}
	closeAt, err := hours.Close.On(start, loc)
	if err != nil {
		return fmt.Errorf("%w: close: %v", ErrInvalidPolicy, err)
	}

	if !sameDate(start, end) || start.Before(openAt) || end.After(closeAt) {
		return fmt.Errorf("%w: %s", ErrOutOfBusinessHours, businessHoursMessage(hours))
	}
	return nil
}

// CheckDurationBounds returns ErrOutOfBoundsDuration unless Min <= d <= Max
func CheckDurationBounds(bounds domain.DurationBoundsPolicy, d time.Duration) error {
	if d < bounds.Min || d > bounds.Max {
		return fmt.Errorf("%w: %s", ErrOutOfBoundsDuration, durationBoundsMessage(bounds))
	}
	return nil
}

// CheckDurationOption returns ErrInvalidDuration unless minutes is one of options
func CheckDurationOption(options []int, minutes int) error {
	for _, o := range options {
		if o == minutes {
			return nil
		}
	}
	return fmt.Errorf("%w: %d minutes (allowed: %s)", ErrInvalidDuration, minutes, joinInts(options))
}

// ValidatePolicy проверяет согласованность политики расписания
func ValidatePolicy(p domain.SchedulingPolicy) error {
	if err := p.BusinessHours.Open.Validate(); err != nil {
		return fmt.Errorf("%w: business open: %v", ErrInvalidPolicy, err)
	}
	if err := p.BusinessHours.Close.Validate(); err != nil {
		return fmt.Errorf("%w: business close: %v", ErrInvalidPolicy, err)
	}
	if !p.BusinessHours.Open.IsBefore(p.BusinessHours.Close) {
		return fmt.Errorf("%w: business open must be before close", ErrInvalidPolicy)
	}
	if p.DurationBounds.Min <= 0 || p.DurationBounds.Min > p.DurationBounds.Max {
		return fmt.Errorf("%w: duration bounds must satisfy 0 < min <= max", ErrInvalidPolicy)
	}
	if len(p.DurationOptions) == 0 {
		return fmt.Errorf("%w: duration options must not be empty", ErrInvalidPolicy)
	}
	for _, o := range p.DurationOptions {
		if o <= 0 {
			return fmt.Errorf("%w: duration option must be positive, got %d", ErrInvalidPolicy, o)
		}
	}
	if _, err := TimeOfDayOptions(p.Picker); err != nil {
		return err
	}
	return nil
}

// FormatDuration renders a duration as "30 minutes", "4 hours", "1 hour 30 minutes"
func FormatDuration(d time.Duration) string {
	total := int(d / time.Minute)
	hours, minutes := total/60, total%60

	var parts []string
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 || hours == 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	return strings.Join(parts, " ")
}

func businessHoursMessage(hours domain.BusinessHoursPolicy) string {
	return fmt.Sprintf("Validation failed - appointments must be within working hours (%s-%s)",
		hours.Open.Short(), hours.Close.Short())
}

func durationBoundsMessage(bounds domain.DurationBoundsPolicy) string {
	return fmt.Sprintf("duration must be between %s and %s",
		FormatDuration(bounds.Min), FormatDuration(bounds.Max))
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return strings.Join(parts, ", ")
}
