package get_available_slots

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room not found")

	// ErrProgramNotFound возвращается, когда программа не найдена
	ErrProgramNotFound = errors.New("program not found")

	// ErrInvalidProgram возвращается, когда длительность программы не позволяет построить сетку
	ErrInvalidProgram = errors.New("invalid program configuration")

	// ErrRangeTooLong возвращается, когда диапазон дат превышает допустимый
	ErrRangeTooLong = errors.New("date range is too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUpstreamUnavailable возвращается, когда данные платформы недоступны
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
