package get_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/attempts"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidAttemptID     = "некорректный ID попытки"
	msgNotFound             = "запись не найдена"
)

type Handler struct {
	service AttemptService
	logger  Logger
}

func NewHandler(service AttemptService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleByReservation GET /api/v1/reservations/{reservationId}
func (h *Handler) HandleByReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	attempt, err := h.service.GetByReservationID(r.Context(), reservationID)
	if err != nil {
		h.respondError(w, "GET /reservations/{id}", msgInvalidReservationID, err)
		return
	}

	h.logger.Info("GET /reservations/{id} - Reservation retrieved successfully: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, attempt)
}

// HandleByAttempt GET /api/v1/attempts/{attemptId}
func (h *Handler) HandleByAttempt(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	attempt, err := h.service.GetByID(r.Context(), attemptID)
	if err != nil {
		h.respondError(w, "GET /attempts/{id}", msgInvalidAttemptID, err)
		return
	}

	h.logger.Info("GET /attempts/{id} - Attempt retrieved successfully: attempt_id=%s", attemptID)
	handlers.RespondJSON(w, http.StatusOK, attempt)
}

func (h *Handler) respondError(w http.ResponseWriter, route, msgInvalid string, err error) {
	switch {
	case errors.Is(err, attempts.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalid)

	case errors.Is(err, attempts.ErrAttemptNotFound):
		h.logger.Warn("%s - Not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Failed to read journal: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
