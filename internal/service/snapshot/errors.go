package snapshot

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена на платформе
	ErrRoomNotFound = errors.New("room not found")

	// ErrProgramNotFound возвращается, когда программа не найдена на платформе
	ErrProgramNotFound = errors.New("program not found")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("invalid date range")

	// ErrUpstream возвращается при ошибке чтения данных платформы
	ErrUpstream = errors.New("service: upstream error")
)
