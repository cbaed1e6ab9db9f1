package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/snapshot"
)

// SnapshotProvider интерфейс загрузки данных платформы
type SnapshotProvider interface {
	Load(ctx context.Context, req snapshot.Request) (*domain.Snapshot, error)
	Program(ctx context.Context, programID int64) (*domain.Program, error)
}

// SlotEvaluator интерфейс оценки слота (режим предпросмотра)
type SlotEvaluator interface {
	EvaluateAt(now time.Time, snap *domain.Snapshot, program *domain.Program, slot domain.Slot) (availability.Result, error)
	Now() time.Time
}

// MetricsRecorder интерфейс метрик оценки слотов
type MetricsRecorder interface {
	ObserveSlotEvaluation(path, reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
