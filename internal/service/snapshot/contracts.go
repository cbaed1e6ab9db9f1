package snapshot

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	snapshotCache "github.com/m04kA/SMC-ReservationService/internal/infra/cache/snapshot"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/hacomono"
)

// UpstreamClient интерфейс клиента внешней платформы
type UpstreamClient interface {
	GetStudioRoom(ctx context.Context, roomID int64) (*domain.Room, error)
	GetProgram(ctx context.Context, programID int64) (*domain.Program, error)
	GetChoiceSchedule(ctx context.Context, roomID int64, date string) (*hacomono.DaySchedule, error)
	GetInstructors(ctx context.Context) (map[int64][]int64, error)
	GetResources(ctx context.Context, studioID int64) ([]domain.ResourceRecord, error)
	GetStudioLessons(ctx context.Context, studioID int64, dateFrom, dateTo string) ([]domain.ExistingBooking, error)
	GetShiftSlots(ctx context.Context, studioID int64, date string) ([]domain.BreakBlock, error)
	CountProgramReservations(ctx context.Context, programID int64, dateFrom, dateTo string) (map[string]int, error)
}

// Cache интерфейс кэша снапшотов
type Cache interface {
	Get(ctx context.Context, k snapshotCache.Key) (*domain.Snapshot, error)
	Set(ctx context.Context, k snapshotCache.Key, snap *domain.Snapshot) error
}

// MetricsRecorder интерфейс метрик кэша
type MetricsRecorder interface {
	ObserveSnapshotCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
