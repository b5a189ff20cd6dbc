package create_appointment

import (
	"errors"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")

	// Ошибки валидации расписания (оборачиваются в *scheduling.RejectionError)
	ErrInvalidTimeInput   = scheduling.ErrInvalidTimeInput
	ErrInvalidDuration    = scheduling.ErrInvalidDuration
	ErrOutOfBusinessHours = scheduling.ErrOutOfBusinessHours
	ErrSlotConflict       = scheduling.ErrSlotConflict
)
