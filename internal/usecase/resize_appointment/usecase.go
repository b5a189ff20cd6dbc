package resize_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/notify"
	appointmentRepo "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/storage/appointment"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/ptr"
)

const operation = "resize"

// UseCase use case для изменения длительности записи в календаре
type UseCase struct {
	appointmentRepo AppointmentRepository
	policies        PolicyProvider
	txManager       TransactionManager
	publisher       EventPublisher
	notifier        Notifier
	decisions       DecisionRecorder
	location        *time.Location
	logger          Logger
	now             func() time.Time
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	policies PolicyProvider,
	txManager TransactionManager,
	publisher EventPublisher,
	notifier Notifier,
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
		publisher:       publisher,
		notifier:        notifier,
		decisions:       decisions,
		location:        location,
		logger:          logger,
		now:             time.Now,
	}
}

// Execute проводит растягивание через guard: BeginResize -> EndResize -> фиксация или откат
// Проверяются границы длительности, рабочие часы и пересечения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResizeAppointment: salon=%s, appointment=%s, start=%s, end=%s",
		req.SalonID, req.AppointmentID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResizeAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.appointmentRepo.GetByID(txCtx, req.SalonID, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("ResizeAppointment: appointment id=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("ResizeAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if !current.CanBeRescheduled() {
			uc.logger.Warn("ResizeAppointment: appointment id=%s has status %s", current.ID, current.Status)
			return fmt.Errorf("%w: status %s", ErrCannotReschedule, current.Status)
		}

		policy, err := uc.policies.GetEffectivePolicy(txCtx, req.SalonID, ptr.Ptr(current.ResourceID))
		if err != nil {
			uc.logger.Error("ResizeAppointment: failed to get policy: %v", err)
			return fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
		}

		existing, err := uc.appointmentRepo.ListByResourceInRange(txCtx, req.SalonID, current.ResourceID, req.Start, req.End)
		if err != nil {
			uc.logger.Error("ResizeAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
		}

		original := *current
		ev := &scheduling.Interaction{
			Appointment:   current,
			ProposedStart: req.Start,
			ProposedEnd:   req.End,
		}

		guard := scheduling.NewGuard(scheduling.NewValidator(policy, uc.location), nil)
		if err := guard.BeginResize(ev); err != nil {
			return fmt.Errorf("%w: begin resize: %w", ErrInternal, err)
		}
		decision := guard.EndResize(ev, existing)

		if !decision.Accepted {
			result = &Response{Notice: decision.Notice, Reason: decision.Err, Appointment: &original, Conflict: decision.Conflict}
			return nil
		}

		updated, err := uc.appointmentRepo.UpdateSchedule(txCtx, req.SalonID, current.ID, current.ResourceID, req.Start, req.End)
		if err != nil {
			uc.logger.Error("ResizeAppointment: failed to update appointment id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		result = &Response{Accepted: true, Notice: decision.Notice, Appointment: updated}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.decisions.RecordSchedulingDecision(operation, scheduling.Outcome(result.Reason))

	if result.Accepted {
		uc.logger.Info("ResizeAppointment: appointment id=%s resized to %s by user=%s",
			result.Appointment.ID, scheduling.FormatDuration(result.Appointment.Duration()), req.UserID)
		event := domain.NewAppointmentEvent(uuid.NewString(), domain.EventAppointmentRescheduled, result.Appointment, uc.now())
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warn("ResizeAppointment: failed to publish event for appointment id=%s: %v", result.Appointment.ID, err)
		}
	} else {
		uc.logger.Warn("ResizeAppointment: rejected appointment id=%s: %v", req.AppointmentID, result.Reason)
	}

	msg := notify.Message{
		SalonID:       req.SalonID,
		AppointmentID: req.AppointmentID,
		Operation:     operation,
		Notice:        result.Notice,
		SentAt:        uc.now(),
	}
	if err := uc.notifier.Notify(ctx, msg); err != nil {
		uc.logger.Warn("ResizeAppointment: failed to deliver notice: %v", err)
	}

	return result, nil
}
