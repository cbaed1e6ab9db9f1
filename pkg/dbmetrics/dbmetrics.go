package dbmetrics

import (
	"context"
	"database/sql"
	"time"
)

// DBExecutor общий интерфейс для *sql.DB и *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor исполнитель запросов внутри транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type txKey struct{}

// WithTx кладет транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(TxExecutor); ok && tx != nil {
		return tx
	}
	return db
}

// StatsSource источник статистики пула (*sql.DB)
type StatsSource interface {
	Stats() sql.DBStats
}

// StatsRecorder получатель статистики пула (*metrics.Metrics)
type StatsRecorder interface {
	SetDBPoolStats(open, inUse, idle int, waitCount int64)
}

// DefaultCollectInterval период сбора статистики пула по умолчанию
const DefaultCollectInterval = 15 * time.Second

// CollectPoolStats периодически публикует статистику пула соединений
// Блокируется до закрытия stop, поэтому запускается в отдельной горутине
func CollectPoolStats(src StatsSource, rec StatsRecorder, interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = DefaultCollectInterval
	}

	publish := func() {
		s := src.Stats()
		rec.SetDBPoolStats(s.OpenConnections, s.InUse, s.Idle, s.WaitCount)
	}

	publish()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			publish()
		case <-stop:
			return
		}
	}
}
