package reschedule_appointment

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

const operation = "reschedule"

// UseCase use case для изменения времени записи из формы
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

// Execute выполняет use case изменения времени записи
// Запись исключается из проверки пересечений сама с собой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: salon=%s, appointment=%s, date=%s, time=%s, duration=%d",
		req.SalonID, req.AppointmentID, req.Date, req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Чтение, проверка и обновление в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем запись с блокировкой
		current, err := uc.appointmentRepo.GetByID(txCtx, req.SalonID, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if !current.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%s has status %s", current.ID, current.Status)
			return fmt.Errorf("%w: status %s", ErrCannotReschedule, current.Status)
		}

		resourceID := ptr.Deref(req.ResourceID, current.ResourceID)

		// 2.2. Политика расписания целевого сотрудника
		policy, err := uc.policies.GetEffectivePolicy(txCtx, req.SalonID, ptr.Ptr(resourceID))
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get policy: %v", err)
			return fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
		}

		// 2.3. Дата + время + длительность -> интервал
		resolution, err := scheduling.Resolve(req.Date, req.StartTime, req.DurationMinutes, uc.location)
		if err != nil {
			return scheduling.Reject(err, policy, nil)
		}

		candidate := scheduling.Candidate{
			Interval:   resolution.Interval(),
			SalonID:    req.SalonID,
			ResourceID: resourceID,
			ExcludeID:  current.ID,
		}

		existing, err := uc.appointmentRepo.ListByResourceInRange(txCtx, req.SalonID, resourceID, candidate.Start, candidate.End)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
		}

		// 2.4. Те же правила, что и при создании
		conflict, err := scheduling.NewValidator(policy, uc.location).CheckForm(candidate, req.DurationMinutes, existing)
		if err != nil {
			return scheduling.Reject(err, policy, conflict)
		}

		updated, err := uc.appointmentRepo.UpdateSchedule(txCtx, req.SalonID, current.ID, resourceID, candidate.Start, candidate.End)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if rej, ok := scheduling.AsRejection(err); ok {
			uc.logger.Warn("RescheduleAppointment: rejected appointment id=%s: %v", req.AppointmentID, err)
			uc.deliver(ctx, req.SalonID, req.AppointmentID, rej.Notice, err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%s by user=%s", result.ID, req.UserID)

	// 3. Событие и уведомление после фиксации транзакции
	notice := scheduling.RescheduledNotice()
	event := domain.NewAppointmentEvent(uuid.NewString(), domain.EventAppointmentRescheduled, result, uc.now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("RescheduleAppointment: failed to publish event for appointment id=%s: %v", result.ID, err)
	}
	uc.deliver(ctx, req.SalonID, result.ID, notice, nil)

	return &Response{Appointment: result, Notice: notice}, nil
}

// deliver фиксирует решение в метриках и отправляет уведомление
func (uc *UseCase) deliver(ctx context.Context, salonID, appointmentID string, notice domain.Notice, cause error) {
	uc.decisions.RecordSchedulingDecision(operation, scheduling.Outcome(cause))

	msg := notify.Message{
		SalonID:       salonID,
		AppointmentID: appointmentID,
		Operation:     operation,
		Notice:        notice,
		SentAt:        uc.now(),
	}
	if err := uc.notifier.Notify(ctx, msg); err != nil {
		uc.logger.Warn("RescheduleAppointment: failed to deliver notice: %v", err)
	}
}
