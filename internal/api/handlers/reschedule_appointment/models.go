package reschedule_appointment

import (
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/appointments/models"
	rescheduleAppointment "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	ResourceID      *string `json:"resourceId,omitempty"`
	Date            string  `json:"date"`      // "2024-03-20"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
}

// RescheduleAppointmentResponse HTTP response model
type RescheduleAppointmentResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
	Notice      handlers.NoticeResponse     `json:"notice"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(salonID, appointmentID, userID string) *rescheduleAppointment.Request {
	return &rescheduleAppointment.Request{
		SalonID:         salonID,
		AppointmentID:   appointmentID,
		UserID:          userID,
		ResourceID:      r.ResourceID,
		Date:            r.Date,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleAppointmentResponse {
	return &RescheduleAppointmentResponse{
		Appointment: models.FromDomainAppointment(resp.Appointment),
		Notice:      handlers.FromDomainNotice(resp.Notice),
	}
}
