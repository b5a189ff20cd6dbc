package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid returns true if the status is one of the known values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether a status change from s to next is allowed
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// Appointment is the read model of a salon appointment assigned to a resource (staff member)
type Appointment struct {
	ID          string
	SalonID     string
	ResourceID  string // сотрудник/оператор
	ClientID    *string
	ServiceName *string
	Start       time.Time
	End         time.Time
	Status      AppointmentStatus
	Notes       *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Duration returns the length of the appointment
func (a *Appointment) Duration() time.Duration {
	return a.End.Sub(a.Start)
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeRescheduled returns true if the appointment time may still change
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// AppointmentsFilter фильтр для получения записей салона
type AppointmentsFilter struct {
	SalonID          string             // Обязательный параметр
	ResourceID       *string            // Фильтр по сотруднику (опционально)
	From             *time.Time         // Начало периода (опционально)
	To               *time.Time         // Конец периода (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отмененные записи
}
