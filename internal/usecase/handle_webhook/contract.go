package handle_webhook

import "context"

// SnapshotInvalidator интерфейс инвалидации кэша снапшотов
type SnapshotInvalidator interface {
	InvalidateRoom(ctx context.Context, roomID int64) (int, error)
	InvalidateAll(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
