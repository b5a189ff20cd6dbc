package list_salon_policies

import (
	"context"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/policy/models"
)

type PolicyService interface {
	List(ctx context.Context, salonID string) (*models.PolicyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
