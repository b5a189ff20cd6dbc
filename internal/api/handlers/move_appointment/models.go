package move_appointment

import (
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/appointments/models"
	moveAppointment "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/move_appointment"
)

// MoveAppointmentRequest HTTP request model (результат drag & drop)
type MoveAppointmentRequest struct {
	Start      time.Time `json:"start"` // RFC3339
	End        time.Time `json:"end"`   // RFC3339
	ResourceID *string   `json:"resourceId,omitempty"`
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
func (r *MoveAppointmentRequest) ToUseCaseRequest(salonID, appointmentID, userID string) *moveAppointment.Request {
	return &moveAppointment.Request{
		SalonID:       salonID,
		AppointmentID: appointmentID,
		UserID:        userID,
		Start:         r.Start,
		End:           r.End,
		ResourceID:    r.ResourceID,
	}
}

// FromUseCaseResponse конвертирует решение use case в HTTP response
func FromUseCaseResponse(resp *moveAppointment.Response) *DecisionResponse {
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
