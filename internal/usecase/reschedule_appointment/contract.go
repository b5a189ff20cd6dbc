package reschedule_appointment

import (
	"context"
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/notify"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, salonID, id string) (*domain.Appointment, error)
	ListByResourceInRange(ctx context.Context, salonID, resourceID string, from, to time.Time) ([]*domain.Appointment, error)
	UpdateSchedule(ctx context.Context, salonID, id, resourceID string, start, end time.Time) (*domain.Appointment, error)
}

// PolicyProvider возвращает действующую политику расписания (с учетом иерархии)
type PolicyProvider interface {
	GetEffectivePolicy(ctx context.Context, salonID string, resourceID *string) (domain.SchedulingPolicy, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события изменения записей
type EventPublisher interface {
	Publish(ctx context.Context, event domain.AppointmentEvent) error
}

// Notifier доставляет уведомление календарю салона
type Notifier interface {
	Notify(ctx context.Context, msg notify.Message) error
}

// DecisionRecorder фиксирует решения валидатора (метрики)
type DecisionRecorder interface {
	RecordSchedulingDecision(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
