package list_attempts

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/attempts/models"
)

type AttemptService interface {
	ListByRoom(ctx context.Context, req *models.ListAttemptsRequest) (*models.AttemptListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
