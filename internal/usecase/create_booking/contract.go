package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/hacomono"
	"github.com/m04kA/SMC-ReservationService/internal/service/snapshot"
)

// SnapshotProvider интерфейс загрузки данных платформы
type SnapshotProvider interface {
	Load(ctx context.Context, req snapshot.Request) (*domain.Snapshot, error)
	Program(ctx context.Context, programID int64) (*domain.Program, error)
}

// SlotResolver интерфейс выбора сотрудника и оборудования (режим бронирования)
type SlotResolver interface {
	ResolveAt(now time.Time, snap *domain.Snapshot, program *domain.Program, slot domain.Slot) (availability.Assignment, error)
}

// UpstreamClient интерфейс клиента внешней платформы
type UpstreamClient interface {
	CreateMember(ctx context.Context, guest hacomono.GuestMember) (int64, error)
	CreateChoiceReservation(ctx context.Context, req hacomono.ChoiceReservationRequest) (*hacomono.Reservation, error)
	FormatStartAt(t time.Time) string
	Location() *time.Location
}

// RejectionClassifier интерфейс классификации отказов платформы
type RejectionClassifier interface {
	Classify(err error) (kind string, message string, ok bool)
}

// AttemptRepository интерфейс журнала попыток бронирования
type AttemptRepository interface {
	Create(ctx context.Context, attempt *domain.ReservationAttempt) (*domain.ReservationAttempt, error)
}

// SnapshotInvalidator интерфейс инвалидации кэша снапшотов
type SnapshotInvalidator interface {
	InvalidateRoom(ctx context.Context, roomID int64) (int, error)
}

// MetricsRecorder интерфейс метрик бронирования
type MetricsRecorder interface {
	ObserveSlotEvaluation(path, reason string)
	ObserveBookingAttempt(outcome, kind string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
