package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
)

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrProgramNotFound возвращается, когда программа не найдена
	ErrProgramNotFound = errors.New("create_booking: program not found")

	// ErrBookingRejected возвращается, когда бронирование отклонено (локально или платформой)
	ErrBookingRejected = errors.New("create_booking: booking rejected")

	// ErrUpstreamUnavailable возвращается, когда платформа недоступна
	ErrUpstreamUnavailable = errors.New("create_booking: upstream unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// BookingError отказ в бронировании с видом ошибки
// Reason заполнен для локальной недоступности, Message платформы передается без изменений
type BookingError struct {
	Kind    availability.BookingErrorKind
	Reason  availability.Reason
	Message string
}

func (e *BookingError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v: %s (%s)", ErrBookingRejected, e.Kind, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrBookingRejected, e.Kind, e.Message)
}

func (e *BookingError) Unwrap() error {
	return ErrBookingRejected
}
