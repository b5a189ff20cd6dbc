package export_calendar

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("export_calendar: invalid input data")

	// ErrInvalidPeriod возвращается при некорректном периоде выгрузки
	ErrInvalidPeriod = errors.New("export_calendar: invalid period")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("export_calendar: internal error")
)
