package list_attempts

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/attempts"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service  AttemptService
	location *time.Location
	logger   Logger
}

func NewHandler(service AttemptService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/attempts
// Query params: from, to (YYYY-MM-DD), outcome, limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(mux.Vars(r)["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/attempts - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	q := r.URL.Query()
	serviceReq, err := ToServiceRequest(roomID, q.Get("from"), q.Get("to"), q.Get("outcome"), q.Get("limit"), h.location)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/attempts - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListByRoom(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, attempts.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/attempts - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /rooms/{id}/attempts - Failed to list attempts: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/attempts - Attempts retrieved successfully: room_id=%d, count=%d", roomID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
