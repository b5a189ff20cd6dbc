package resize_appointment

import (
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/appointments/models"
	resizeAppointment "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/resize_appointment"
)

// ResizeAppointmentRequest HTTP request model (растягивание записи в календаре)
type ResizeAppointmentRequest struct {
	Start time.Time `json:"start"` // RFC3339
	End   time.Time `json:"end"`   // RFC3339
}

// DecisionResponse HTTP response model
// При отклонении appointment содержит исходное время для отката в календаре
type DecisionResponse struct {
	Accepted      bool                        `json:"accepted"`
	Notice        handlers.NoticeResponse     `json:"notice"`
	Appointment   *models.AppointmentResponse `json:"appointment"`
	ConflictingID *string                     `json:"conflictingAppointmentId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ResizeAppointmentRequest) ToUseCaseRequest(salonID, appointmentID, userID string) *resizeAppointment.Request {
	return &resizeAppointment.Request{
		SalonID:       salonID,
		AppointmentID: appointmentID,
		UserID:        userID,
		Start:         r.Start,
		End:           r.End,
	}
}

// FromUseCaseResponse конвертирует решение use case в HTTP response
func FromUseCaseResponse(resp *resizeAppointment.Response) *DecisionResponse {
	out := &DecisionResponse{
		Accepted:    resp.Accepted,
		Notice:      handlers.FromDomainNotice(resp.Notice),
		Appointment: models.FromDomainAppointment(resp.Appointment),
	}
	if resp.Conflict != nil {
		out.ConflictingID = &resp.Conflict.ID
	}
	return out
}
