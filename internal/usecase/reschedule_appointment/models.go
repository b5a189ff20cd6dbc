package reschedule_appointment

import "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"

// Request модель запроса на изменение времени записи из формы
type Request struct {
	SalonID         string  // ID салона
	AppointmentID   string  // ID записи
	UserID          string  // ID пользователя
	ResourceID      *string // Новый сотрудник (nil - без изменений)
	Date            string  // Дата "2024-03-20"
	StartTime       string  // Время начала "10:00"
	DurationMinutes int     // Длительность из списка вариантов
}

// Response модель ответа с обновленной записью
type Response struct {
	Appointment *domain.Appointment
	Notice      domain.Notice
}
