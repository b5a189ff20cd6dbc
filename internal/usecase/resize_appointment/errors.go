package resize_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("resize_appointment: appointment not found")

	// ErrCannotReschedule возвращается для отмененных и завершенных записей
	ErrCannotReschedule = errors.New("resize_appointment: appointment cannot be resized")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resize_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resize_appointment: internal error")
)
