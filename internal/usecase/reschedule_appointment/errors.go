package reschedule_appointment

import (
	"errors"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrCannotReschedule возвращается для отмененных и завершенных записей
	ErrCannotReschedule = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")

	// Ошибки валидации расписания (оборачиваются в *scheduling.RejectionError)
	ErrInvalidTimeInput   = scheduling.ErrInvalidTimeInput
	ErrInvalidDuration    = scheduling.ErrInvalidDuration
	ErrOutOfBusinessHours = scheduling.ErrOutOfBusinessHours
	ErrSlotConflict       = scheduling.ErrSlotConflict
)
