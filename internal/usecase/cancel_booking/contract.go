package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UpstreamClient интерфейс отмены бронирований на платформе
type UpstreamClient interface {
	CancelReservations(ctx context.Context, ids []int64) error
}

// AttemptRepository интерфейс журнала попыток бронирования
type AttemptRepository interface {
	Create(ctx context.Context, attempt *domain.ReservationAttempt) (*domain.ReservationAttempt, error)
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.ReservationAttempt, error)
}

// SnapshotInvalidator интерфейс инвалидации кэша снапшотов
type SnapshotInvalidator interface {
	InvalidateRoom(ctx context.Context, roomID int64) (int, error)
}

// MetricsRecorder интерфейс метрик бронирования
type MetricsRecorder interface {
	ObserveBookingAttempt(outcome, kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
