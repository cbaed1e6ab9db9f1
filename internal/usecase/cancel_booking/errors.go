package cancel_booking

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено на платформе
	ErrReservationNotFound = errors.New("cancel_booking: reservation not found")

	// ErrCannotCancel возвращается, когда платформа отказала в отмене
	ErrCannotCancel = errors.New("cancel_booking: reservation cannot be cancelled")

	// ErrUpstreamUnavailable возвращается, когда платформа недоступна
	ErrUpstreamUnavailable = errors.New("cancel_booking: upstream unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)

// CancelError отказ платформы в отмене; Message передается без изменений
type CancelError struct {
	Message string
}

func (e *CancelError) Error() string {
	return ErrCannotCancel.Error() + ": " + e.Message
}

func (e *CancelError) Unwrap() error {
	return ErrCannotCancel
}
