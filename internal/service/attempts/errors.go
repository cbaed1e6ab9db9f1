package attempts

import "errors"

var (
	// ErrAttemptNotFound возвращается, когда запись журнала не найдена
	ErrAttemptNotFound = errors.New("attempt not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
