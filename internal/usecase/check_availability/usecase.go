package check_availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/ptr"
)

const operation = "check_availability"

// UseCase проверка доступности интервала без изменения данных
type UseCase struct {
	appointmentRepo AppointmentRepository
	policies        PolicyProvider
	txManager       TransactionManager
	decisions       DecisionRecorder
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	policies PolicyProvider,
	txManager TransactionManager,
	decisions DecisionRecorder,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		policies:        policies,
		txManager:       txManager,
		decisions:       decisions,
		location:        location,
		logger:          logger,
	}
}

// Execute проверяет, свободен ли интервал, и попадает ли он в рабочие часы
// Результат носит рекомендательный характер: окончательная проверка выполняется при сохранении
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: salon=%s, resource=%s, start=%s, end=%s, exclude=%s",
		req.SalonID, req.ResourceID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339), req.ExcludeID)

	if strings.TrimSpace(req.SalonID) == "" || strings.TrimSpace(req.ResourceID) == "" {
		return nil, fmt.Errorf("%w: salonId and resourceId are required", ErrInvalidInput)
	}

	if err := scheduling.ValidateInterval(req.Start, req.End); err != nil {
		uc.logger.Warn("CheckAvailability: %v", err)
		return nil, err
	}

	var (
		policy   domain.SchedulingPolicy
		existing []*domain.Appointment
	)

	// Политика и записи читаются с одного снимка
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		policy, err = uc.policies.GetEffectivePolicy(txCtx, req.SalonID, ptr.Ptr(req.ResourceID))
		if err != nil {
			uc.logger.Error("CheckAvailability: failed to get policy: %v", err)
			return fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
		}

		existing, err = uc.appointmentRepo.ListByResourceInRange(txCtx, req.SalonID, req.ResourceID, req.Start, req.End)
		if err != nil {
			uc.logger.Error("CheckAvailability: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	validator := scheduling.NewValidator(policy, uc.location)
	candidate := scheduling.Candidate{
		Interval:   scheduling.Interval{Start: req.Start, End: req.End},
		SalonID:    req.SalonID,
		ResourceID: req.ResourceID,
		ExcludeID:  req.ExcludeID,
	}

	resp := &Response{Available: true, Start: req.Start, End: req.End}
	if conflict := validator.Checker.FindConflict(candidate, existing); conflict != nil {
		resp.Available = false
		resp.ConflictID = ptr.Ptr(conflict.ID)
	}

	hoursErr := scheduling.CheckBusinessHours(policy.BusinessHours, req.Start, req.End, uc.location)
	resp.WithinBusinessHours = hoursErr == nil

	switch {
	case !resp.Available:
		uc.decisions.RecordSchedulingDecision(operation, scheduling.OutcomeConflict)
	case hoursErr != nil:
		uc.decisions.RecordSchedulingDecision(operation, scheduling.Outcome(hoursErr))
	default:
		uc.decisions.RecordSchedulingDecision(operation, scheduling.OutcomeAccepted)
	}

	uc.logger.Info("CheckAvailability: available=%t, withinBusinessHours=%t", resp.Available, resp.WithinBusinessHours)
	return resp, nil
}
