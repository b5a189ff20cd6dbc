package move_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("move_appointment: appointment not found")

	// ErrCannotReschedule возвращается для отмененных и завершенных записей
	ErrCannotReschedule = errors.New("move_appointment: appointment cannot be moved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("move_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("move_appointment: internal error")
)
