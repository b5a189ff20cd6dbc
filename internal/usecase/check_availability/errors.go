package check_availability

import (
	"errors"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInvalidInterval возвращается, если окончание не позже начала
	ErrInvalidInterval = scheduling.ErrInvalidInterval

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
