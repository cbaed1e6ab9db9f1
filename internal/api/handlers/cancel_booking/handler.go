package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	cancelBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/cancel_booking"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
	msgUpstreamUnavailable  = "система бронирования временно недоступна"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reservationId из URL
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("POST /reservations/{id}/cancel - Invalid reservation ID: %q", mux.Vars(r)["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{ReservationID: reservationID})
	if err != nil {
		var cancelErr *cancelBooking.CancelError
		switch {
		case errors.As(err, &cancelErr):
			h.logger.Warn("POST /reservations/{id}/cancel - Cancellation rejected: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, cancelErr.Message)

		case errors.Is(err, cancelBooking.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/cancel - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		case errors.Is(err, cancelBooking.ErrUpstreamUnavailable):
			h.logger.Error("POST /reservations/{id}/cancel - Upstream unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgUpstreamUnavailable)

		default:
			h.logger.Error("POST /reservations/{id}/cancel - Failed to cancel reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/cancel - Reservation cancelled successfully: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
