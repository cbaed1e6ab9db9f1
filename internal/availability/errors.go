package availability

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput возвращается при некорректных входных данных (программа, интервалы, сетка)
	// Прерывает оценку только одного слота
	ErrMalformedInput = errors.New("availability: malformed input")

	// ErrSlotUnavailable возвращается резолвером для слота, который не доступен
	ErrSlotUnavailable = errors.New("availability: slot is not available")
)

// UnavailableError несёт причину недоступности слота
type UnavailableError struct {
	Reason Reason
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSlotUnavailable, e.Reason)
}

func (e *UnavailableError) Unwrap() error {
	return ErrSlotUnavailable
}

// Kind booking error kind of the reason
func (e *UnavailableError) Kind() BookingErrorKind {
	return KindForReason(e.Reason)
}

func malformed(format string, v ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, v...))
}
