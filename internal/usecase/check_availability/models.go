package check_availability

import "time"

// Request проверка свободного интервала у сотрудника
type Request struct {
	SalonID    string    // ID салона
	ResourceID string    // ID сотрудника
	Start      time.Time // Начало интервала
	End        time.Time // Окончание интервала
	ExcludeID  string    // Запись, исключаемая из проверки (при переносе)
}

// Response результат проверки
type Response struct {
	Available           bool    // Нет пересечений с другими записями
	ConflictID          *string // Первая пересекающаяся запись
	WithinBusinessHours bool    // Интервал внутри рабочих часов
	Start               time.Time
	End                 time.Time
}
