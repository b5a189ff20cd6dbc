package scheduling

import (
	"fmt"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/types"
)

// TimeOfDayOptions generates the start times offered by the picker,
// from DayStart to DayEnd inclusive with StepMinutes between them
func TimeOfDayOptions(picker domain.PickerPolicy) ([]types.TimeString, error) {
	if picker.StepMinutes <= 0 {
		return nil, fmt.Errorf("%w: picker step must be positive, got %d", ErrInvalidPolicy, picker.StepMinutes)
	}
	from, err := picker.DayStart.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: picker day start: %v", ErrInvalidPolicy, err)
	}
	to, err := picker.DayEnd.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: picker day end: %v", ErrInvalidPolicy, err)
	}
	if from > to {
		return nil, fmt.Errorf("%w: picker day start %s is after day end %s", ErrInvalidPolicy, picker.DayStart, picker.DayEnd)
	}

	options := make([]types.TimeString, 0, (to-from)/picker.StepMinutes+1)
	for m := from; m <= to; m += picker.StepMinutes {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
		}
		options = append(options, ts)
	}
	return options, nil
}
