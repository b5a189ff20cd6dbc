package policy

import (
	"context"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// PolicyRepository интерфейс репозитория политик расписания
type PolicyRepository interface {
	Create(ctx context.Context, p *domain.SchedulingPolicy) (*domain.SchedulingPolicy, error)
	GetBySalonAndResource(ctx context.Context, salonID string, resourceID *string) (*domain.SchedulingPolicy, error)
	GetWithHierarchy(ctx context.Context, salonID string, resourceID *string) (*domain.SchedulingPolicy, error)
	ListBySalon(ctx context.Context, salonID string) ([]*domain.SchedulingPolicy, error)
	Update(ctx context.Context, id int64, p *domain.SchedulingPolicy) (*domain.SchedulingPolicy, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
