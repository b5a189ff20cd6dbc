package resize_appointment

import (
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// Request результат растягивания записи в календаре
// Сотрудник при растягивании не меняется
type Request struct {
	SalonID       string    // ID салона
	AppointmentID string    // ID записи
	UserID        string    // ID пользователя
	Start         time.Time // Новое начало
	End           time.Time // Новое окончание
}

// Response решение по растягиванию
type Response struct {
	Accepted    bool
	Notice      domain.Notice
	Reason      error               // Причина отклонения (nil, если принято)
	Appointment *domain.Appointment // Обновленная запись или исходная при откате
	Conflict    *domain.Appointment // Пересекающаяся запись при конфликте
}
