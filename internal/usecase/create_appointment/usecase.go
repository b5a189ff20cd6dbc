package create_appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/notify"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/ptr"
)

const operation = "create"

// UseCase use case для создания записи из формы
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
	newID           func() string
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
		newID:           uuid.NewString,
	}
}

// Execute выполняет use case создания записи
// Чтение существующих записей и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: salon=%s, resource=%s, date=%s, time=%s, duration=%d",
		req.SalonID, req.ResourceID, req.Date, req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Политика расписания салона/сотрудника
	policy, err := uc.policies.GetEffectivePolicy(ctx, req.SalonID, ptr.Ptr(req.ResourceID))
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %w", ErrInternal, err)
	}

	// 3. Дата + время + длительность -> интервал
	resolution, err := scheduling.Resolve(req.Date, req.StartTime, req.DurationMinutes, uc.location)
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to resolve time: %v", err)
		return nil, uc.reject(ctx, req.SalonID, err, policy, nil)
	}

	validator := scheduling.NewValidator(policy, uc.location)
	candidate := scheduling.Candidate{
		Interval:   resolution.Interval(),
		SalonID:    req.SalonID,
		ResourceID: req.ResourceID,
	}

	var result *domain.Appointment

	// 4. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.appointmentRepo.ListByResourceInRange(txCtx, req.SalonID, req.ResourceID, candidate.Start, candidate.End)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
		}

		conflict, err := validator.CheckForm(candidate, req.DurationMinutes, existing)
		if err != nil {
			return scheduling.Reject(err, policy, conflict)
		}

		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ID:          uc.newID(),
			SalonID:     req.SalonID,
			ResourceID:  req.ResourceID,
			ClientID:    req.ClientID,
			ServiceName: req.ServiceName,
			Start:       candidate.Start,
			End:         candidate.End,
			Status:      domain.StatusConfirmed,
			Notes:       req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if rej, ok := scheduling.AsRejection(err); ok {
			uc.logger.Warn("CreateAppointment: rejected: %v", err)
			uc.deliver(ctx, req.SalonID, "", rej.Notice, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s by user=%s", result.ID, req.UserID)

	// 5. Событие и уведомление после фиксации транзакции
	notice := scheduling.CreatedNotice()
	uc.publish(ctx, result)
	uc.deliver(ctx, req.SalonID, result.ID, notice, nil)

	return &Response{Appointment: result, Notice: notice}, nil
}

// reject оборачивает ошибку валидации и доставляет уведомление
func (uc *UseCase) reject(ctx context.Context, salonID string, err error, policy domain.SchedulingPolicy, conflict *domain.Appointment) error {
	rej := scheduling.Reject(err, policy, conflict)
	uc.deliver(ctx, salonID, "", rej.Notice, err)
	return rej
}

// deliver фиксирует решение в метриках и отправляет уведомление
// Ошибки доставки только логируются
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
		uc.logger.Warn("CreateAppointment: failed to deliver notice: %v", err)
	}
}

func (uc *UseCase) publish(ctx context.Context, a *domain.Appointment) {
	event := domain.NewAppointmentEvent(uc.newID(), domain.EventAppointmentCreated, a, uc.now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for appointment id=%s: %v", a.ID, err)
	}
}
