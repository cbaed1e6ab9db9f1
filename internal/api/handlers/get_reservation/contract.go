package get_reservation

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/attempts/models"
)

type AttemptService interface {
	GetByID(ctx context.Context, id string) (*models.AttemptResponse, error)
	GetByReservationID(ctx context.Context, reservationID int64) (*models.AttemptResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
