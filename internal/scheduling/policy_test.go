package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/types"
)

func TestCheckBusinessHours(t *testing.T) {
	hours := domain.DefaultSchedulingPolicy().BusinessHours

	tests := []struct {
		name       string
		start, end time.Time
		wantErr    bool
	}{
		{name: "whole day", start: at(8, 0), end: at(20, 0)},
		{name: "inside", start: at(10, 0), end: at(11, 0)},
		{name: "before open", start: at(7, 0), end: at(8, 0), wantErr: true},
		{name: "after close", start: at(19, 30), end: at(20, 30), wantErr: true},
		{name: "crosses midnight", start: at(19, 0), end: at(19, 0).Add(6 * time.Hour), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBusinessHours(hours, tt.start, tt.end, time.UTC)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOutOfBusinessHours)
				assert.Contains(t, err.Error(), "8:00-20:00")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckBusinessHours_UsesLocation(t *testing.T) {
	rome := time.FixedZone("CET", 3600)
	hours := domain.DefaultSchedulingPolicy().BusinessHours

	// 07:30 UTC is 08:30 in the salon's zone
	start := time.Date(2024, 3, 20, 7, 30, 0, 0, time.UTC)
	assert.NoError(t, CheckBusinessHours(hours, start, start.Add(time.Hour), rome))
	assert.ErrorIs(t, CheckBusinessHours(hours, start, start.Add(time.Hour), time.UTC), ErrOutOfBusinessHours)
}

func TestCheckDurationBounds(t *testing.T) {
	bounds := domain.DefaultSchedulingPolicy().DurationBounds

	assert.NoError(t, CheckDurationBounds(bounds, 30*time.Minute))
	assert.NoError(t, CheckDurationBounds(bounds, 4*time.Hour))

	for _, d := range []time.Duration{15 * time.Minute, 5 * time.Hour} {
		err := CheckDurationBounds(bounds, d)
		assert.ErrorIs(t, err, ErrOutOfBoundsDuration)
		assert.Contains(t, err.Error(), "duration must be between 30 minutes and 4 hours")
	}
}

func TestCheckDurationOption(t *testing.T) {
	options := domain.DefaultSchedulingPolicy().DurationOptions

	assert.NoError(t, CheckDurationOption(options, 90))
	assert.ErrorIs(t, CheckDurationOption(options, 20), ErrInvalidDuration)
	// 15 is offered by the picker even though a resize to 15 minutes is rejected
	assert.NoError(t, CheckDurationOption(options, 15))
}

func TestValidatePolicy(t *testing.T) {
	require.NoError(t, ValidatePolicy(domain.DefaultSchedulingPolicy()))

	tests := []struct {
		name   string
		mutate func(p *domain.SchedulingPolicy)
	}{
		{name: "open after close", mutate: func(p *domain.SchedulingPolicy) { p.BusinessHours.Open = "21:00" }},
		{name: "bad close", mutate: func(p *domain.SchedulingPolicy) { p.BusinessHours.Close = "late" }},
		{name: "min above max", mutate: func(p *domain.SchedulingPolicy) { p.DurationBounds.Min = 5 * time.Hour }},
		{name: "zero min", mutate: func(p *domain.SchedulingPolicy) { p.DurationBounds.Min = 0 }},
		{name: "no options", mutate: func(p *domain.SchedulingPolicy) { p.DurationOptions = nil }},
		{name: "negative option", mutate: func(p *domain.SchedulingPolicy) { p.DurationOptions = []int{30, -5} }},
		{name: "zero step", mutate: func(p *domain.SchedulingPolicy) { p.Picker.StepMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.DefaultSchedulingPolicy()
			tt.mutate(&p)
			assert.ErrorIs(t, ValidatePolicy(p), ErrInvalidPolicy)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30 minutes", FormatDuration(30*time.Minute))
	assert.Equal(t, "1 minute", FormatDuration(time.Minute))
	assert.Equal(t, "1 hour", FormatDuration(time.Hour))
	assert.Equal(t, "4 hours", FormatDuration(4*time.Hour))
	assert.Equal(t, "1 hour 30 minutes", FormatDuration(90*time.Minute))
	assert.Equal(t, "0 minutes", FormatDuration(0))
}

func TestTimeOfDayOptions(t *testing.T) {
	options, err := TimeOfDayOptions(domain.DefaultSchedulingPolicy().Picker)
	require.NoError(t, err)

	require.Len(t, options, 48)
	assert.Equal(t, types.TimeString("08:00"), options[0])
	assert.Equal(t, types.TimeString("08:15"), options[1])
	assert.Equal(t, types.TimeString("19:45"), options[len(options)-1])

	_, err = TimeOfDayOptions(domain.PickerPolicy{DayStart: "10:00", DayEnd: "09:00", StepMinutes: 15})
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	_, err = TimeOfDayOptions(domain.PickerPolicy{DayStart: "10:00", DayEnd: "11:00", StepMinutes: -1})
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}
