package get_time_options

import (
	"context"
	"fmt"
	"strings"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
)

// UseCase use case для получения вариантов времени и длительности формы
type UseCase struct {
	policies PolicyProvider
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(policies PolicyProvider, logger Logger) *UseCase {
	return &UseCase{
		policies: policies,
		logger:   logger,
	}
}

// Execute строит список времени начала по шагу выборщика и список длительностей
// Если переданы время начала и длительность, дополнительно рассчитывает время окончания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetTimeOptions: salon=%s, startTime=%q, duration=%d", req.SalonID, req.StartTime, req.DurationMinutes)

	if strings.TrimSpace(req.SalonID) == "" {
		return nil, fmt.Errorf("%w: salonId is required", ErrInvalidInput)
	}

	policy, err := uc.policies.GetEffectivePolicy(ctx, req.SalonID, req.ResourceID)
	if err != nil {
		uc.logger.Error("GetTimeOptions: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
	}

	options, err := scheduling.TimeOfDayOptions(policy.Picker)
	if err != nil {
		uc.logger.Error("GetTimeOptions: invalid picker policy for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	resp := &Response{
		TimeOptions:     options,
		DurationOptions: append([]int(nil), policy.DurationOptions...),
		BusinessOpen:    policy.BusinessHours.Open,
		BusinessClose:   policy.BusinessHours.Close,
		MinDuration:     policy.DurationBounds.Min,
		MaxDuration:     policy.DurationBounds.Max,
	}

	if req.StartTime != "" || req.DurationMinutes != 0 {
		endTime, err := scheduling.ResolveEndTime(req.StartTime, req.DurationMinutes)
		if err != nil {
			uc.logger.Warn("GetTimeOptions: failed to resolve end time: %v", err)
			return nil, err
		}
		resp.EndTime = &endTime
	}

	uc.logger.Info("GetTimeOptions: %d time options, %d duration options", len(resp.TimeOptions), len(resp.DurationOptions))
	return resp, nil
}
