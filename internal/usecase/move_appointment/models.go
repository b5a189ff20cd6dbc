package move_appointment

import (
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// Request результат перетаскивания записи в календаре
type Request struct {
	SalonID       string    // ID салона
	AppointmentID string    // ID записи
	UserID        string    // ID пользователя
	Start         time.Time // Предлагаемое начало
	End           time.Time // Предлагаемое окончание
	ResourceID    *string   // Сотрудник, на которого перетащили запись (nil - тот же)
}

// Response решение по перетаскиванию
// Отклонение не является ошибкой use case: календарь откатывает запись и показывает уведомление
type Response struct {
	Accepted    bool
	Notice      domain.Notice
	Reason      error               // Причина отклонения (nil, если принято)
	Appointment *domain.Appointment // Обновленная запись или исходная при откате
	Conflict    *domain.Appointment // Пересекающаяся запись при конфликте
}
