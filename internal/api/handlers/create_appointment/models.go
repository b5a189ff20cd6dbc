package create_appointment

import (
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/appointments/models"
	createAppointment "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ResourceID      string  `json:"resourceId"`
	ClientID        *string `json:"clientId,omitempty"`
	ServiceName     *string `json:"serviceName,omitempty"`
	Date            string  `json:"date"`      // "2024-03-20"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Notes           *string `json:"notes,omitempty"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
	Notice      handlers.NoticeResponse     `json:"notice"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Дата и время разбираются резолвером внутри use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(salonID, userID string) *createAppointment.Request {
	return &createAppointment.Request{
		SalonID:         salonID,
		ResourceID:      r.ResourceID,
		UserID:          userID,
		ClientID:        r.ClientID,
		ServiceName:     r.ServiceName,
		Date:            r.Date,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		Appointment: models.FromDomainAppointment(resp.Appointment),
		Notice:      handlers.FromDomainNotice(resp.Notice),
	}
}
