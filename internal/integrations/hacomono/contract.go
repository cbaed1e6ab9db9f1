package hacomono

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder метрики исходящих запросов (*metrics.Metrics)
type MetricsRecorder interface {
	ObserveUpstreamRequest(method, endpoint string, status int, elapsed time.Duration)
}
