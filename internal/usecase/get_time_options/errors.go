package get_time_options

import (
	"errors"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_time_options: invalid input data")

	// ErrInvalidTimeInput возвращается при некорректном времени начала или длительности
	ErrInvalidTimeInput = scheduling.ErrInvalidTimeInput

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_time_options: internal error")
)
