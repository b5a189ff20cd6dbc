package models

import (
	"errors"
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID string `json:"-"`
	Status string `json:"status"`
}

// ListAppointmentsRequest запрос на получение записей салона
type ListAppointmentsRequest struct {
	SalonID          string
	ResourceID       *string    // Фильтр по сотруднику (опционально)
	From             *time.Time // Начало периода (опционально)
	To               *time.Time // Конец периода (опционально)
	Status           *string    // Фильтр по статусу (опционально)
	IncludeCancelled bool       // Включить отмененные записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		SalonID:          r.SalonID,
		ResourceID:       r.ResourceID,
		From:             r.From,
		To:               r.To,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              string     `json:"id"`
	SalonID         string     `json:"salonId"`
	ResourceID      string     `json:"resourceId"`
	ClientID        *string    `json:"clientId,omitempty"`
	ServiceName     *string    `json:"serviceName,omitempty"`
	Start           time.Time  `json:"start"`
	End             time.Time  `json:"end"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	Notes           *string    `json:"notes,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		SalonID:         a.SalonID,
		ResourceID:      a.ResourceID,
		ClientID:        a.ClientID,
		ServiceName:     a.ServiceName,
		Start:           a.Start,
		End:             a.End,
		DurationMinutes: int(a.Duration() / time.Minute),
		Status:          string(a.Status),
		Notes:           a.Notes,
		CancelledAt:     a.CancelledAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: result, Total: len(result)}
}

// ToDomainStatus конвертирует строку в статус записи
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
