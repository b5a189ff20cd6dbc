package export_calendar

import "time"

// Request параметры выгрузки календаря сотрудника
type Request struct {
	SalonID          string    // ID салона
	ResourceID       string    // ID сотрудника
	From             time.Time // Начало периода
	To               time.Time // Конец периода
	IncludeCancelled bool      // Выгружать отмененные со статусом CANCELLED
}

// Response файл календаря
type Response struct {
	FileName string
	Content  []byte
	Count    int // Количество событий
}
