package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// Checker проверка зависимости
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc адаптер функции к Checker
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// HealthResponse HTTP response model
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	checks map[string]Checker
	logger Logger
}

func NewHandler(checks map[string]Checker, logger Logger) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Handle GET /health
// degraded только при недоступной базе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	for name, checker := range h.checks {
		if err := checker.Ping(ctx); err != nil {
			h.logger.Warn("GET /health - %s check failed: %v", name, err)
			resp.Checks[name] = "unavailable"
			continue
		}
		resp.Checks[name] = "ok"
	}

	if resp.Checks["database"] == "unavailable" {
		resp.Status = "degraded"
		handlers.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
