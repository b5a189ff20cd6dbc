package cancel_appointment

import (
	"context"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/appointments/models"
)

type AppointmentService interface {
	Cancel(ctx context.Context, salonID, id, userID string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
