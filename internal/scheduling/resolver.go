package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/types"
)

// Resolution is the concrete interval produced from form input
type Resolution struct {
	Start time.Time
	End   time.Time
	// EndTime is the wall-clock time of End; it wraps past midnight
	EndTime types.TimeString
}

// Interval returns the resolved range
func (r *Resolution) Interval() Interval {
	return Interval{Start: r.Start, End: r.End}
}

// Resolve combines a calendar date (YYYY-MM-DD), a start time (HH:MM) and a
// duration into start and end instants in loc. Nothing is returned on failure.
func Resolve(date, startTime string, durationMinutes int, loc *time.Location) (*Resolution, error) {
	if loc == nil {
		loc = time.Local
	}

	day, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(date), loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q: %v", ErrInvalidTimeInput, date, err)
	}

	ts, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start time %q: %v", ErrInvalidTimeInput, startTime, err)
	}

	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidTimeInput, durationMinutes)
	}

	start, err := ts.On(day, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeInput, err)
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	return &Resolution{
		Start:   start,
		End:     end,
		EndTime: types.NewTimeString(end),
	}, nil
}

// ResolveEndTime returns only the end time of day, for picker previews
func ResolveEndTime(startTime string, durationMinutes int) (types.TimeString, error) {
	ts, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return "", fmt.Errorf("%w: start time %q: %v", ErrInvalidTimeInput, startTime, err)
	}
	if durationMinutes <= 0 {
		return "", fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidTimeInput, durationMinutes)
	}

	minutes, err := ts.Minutes()
	if err != nil {
		return "", fmt.Errorf("%w: start time %q: %v", ErrInvalidTimeInput, startTime, err)
	}
	total := (minutes + durationMinutes) % (24 * 60)
	return types.NewTimeStringFromMinutes(total)
}
