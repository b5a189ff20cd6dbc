package check_availability

import (
	"context"
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListByResourceInRange(ctx context.Context, salonID, resourceID string, from, to time.Time) ([]*domain.Appointment, error)
}

// PolicyProvider возвращает действующую политику расписания (с учетом иерархии)
type PolicyProvider interface {
	GetEffectivePolicy(ctx context.Context, salonID string, resourceID *string) (domain.SchedulingPolicy, error)
}

// DecisionRecorder фиксирует решения валидатора (метрики)
type DecisionRecorder interface {
	RecordSchedulingDecision(operation, outcome string)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
