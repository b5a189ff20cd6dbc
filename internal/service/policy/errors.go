package policy

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrPolicyNotFound возвращается, если на указанном уровне нет сохраненной политики
	ErrPolicyNotFound = errors.New("policy not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
