package get_time_options

import (
	"context"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// PolicyProvider возвращает действующую политику расписания (с учетом иерархии)
type PolicyProvider interface {
	GetEffectivePolicy(ctx context.Context, salonID string, resourceID *string) (domain.SchedulingPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
