package domain

import "time"

// EventType тип события изменения записи
type EventType string

const (
	EventAppointmentCreated       EventType = "appointment.created"
	EventAppointmentRescheduled   EventType = "appointment.rescheduled"
	EventAppointmentCancelled     EventType = "appointment.cancelled"
	EventAppointmentStatusChanged EventType = "appointment.status_changed"
)

// AppointmentEvent событие, публикуемое после фиксации изменения записи
type AppointmentEvent struct {
	EventID       string            `json:"eventId"`
	Type          EventType         `json:"type"`
	AppointmentID string            `json:"appointmentId"`
	SalonID       string            `json:"salonId"`
	ResourceID    string            `json:"resourceId"`
	Start         time.Time         `json:"start"`
	End           time.Time         `json:"end"`
	Status        AppointmentStatus `json:"status"`
	OccurredAt    time.Time         `json:"occurredAt"`
}

// NewAppointmentEvent создает событие по текущему состоянию записи
func NewAppointmentEvent(eventID string, eventType EventType, a *Appointment, occurredAt time.Time) AppointmentEvent {
	return AppointmentEvent{
		EventID:       eventID,
		Type:          eventType,
		AppointmentID: a.ID,
		SalonID:       a.SalonID,
		ResourceID:    a.ResourceID,
		Start:         a.Start,
		End:           a.End,
		Status:        a.Status,
		OccurredAt:    occurredAt,
	}
}
