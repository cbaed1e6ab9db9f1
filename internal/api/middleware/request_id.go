package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HeaderRequestID заголовок с ID запроса
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// RequestID присваивает запросу ID и логирует его завершение
func RequestID(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get(HeaderRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, reqID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, reqID)))

			logger.Info("%s %s - %d in %dms, request_id=%s",
				r.Method, r.URL.Path, rec.status, time.Since(start).Milliseconds(), reqID)
		})
	}
}

// GetRequestID извлекает ID запроса из контекста
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
