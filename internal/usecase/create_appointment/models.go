package create_appointment

import "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"

// Request модель запроса на создание записи из формы
type Request struct {
	SalonID         string  // ID салона
	ResourceID      string  // ID сотрудника
	UserID          string  // ID пользователя, создающего запись
	ClientID        *string // ID клиента (опционально)
	ServiceName     *string // Название услуги (опционально)
	Date            string  // Дата "2024-03-20"
	StartTime       string  // Время начала "10:00"
	DurationMinutes int     // Длительность из списка вариантов
	Notes           *string // Заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
	Notice      domain.Notice
}
