package get_time_options

import (
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/types"
)

// Request параметры выпадающих списков формы записи
type Request struct {
	SalonID         string  // ID салона
	ResourceID      *string // ID сотрудника (опционально)
	StartTime       string  // Время начала для предпросмотра окончания (опционально)
	DurationMinutes int     // Длительность для предпросмотра окончания (опционально)
}

// Response варианты времени и длительности
type Response struct {
	TimeOptions     []types.TimeString
	DurationOptions []int
	EndTime         *types.TimeString // Окончание для StartTime + DurationMinutes
	BusinessOpen    types.TimeString
	BusinessClose   types.TimeString
	MinDuration     time.Duration
	MaxDuration     time.Duration
}
