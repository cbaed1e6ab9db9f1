package attempts

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// AttemptRepository интерфейс журнала попыток бронирования
type AttemptRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ReservationAttempt, error)
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.ReservationAttempt, error)
	ListByRoomAndDate(ctx context.Context, filter domain.AttemptsFilter) ([]*domain.ReservationAttempt, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
