package get_salon_policy

import (
	"context"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/policy/models"
)

type PolicyService interface {
	GetEffective(ctx context.Context, salonID string, resourceID *string) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
