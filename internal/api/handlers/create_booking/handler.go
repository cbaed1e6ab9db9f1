package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректные дата или время начала, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput        = "некорректные данные бронирования"
	msgRoomNotFound        = "комната не найдена"
	msgProgramNotFound     = "программа не найдена"
	msgUpstreamUnavailable = "система бронирования временно недоступна"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var bookingErr *createBooking.BookingError
		switch {
		case errors.As(err, &bookingErr):
			h.logger.Warn("POST /reservations - Booking rejected: room_id=%d, program_id=%d, kind=%s, reason=%s",
				req.RoomID, req.ProgramID, bookingErr.Kind, bookingErr.Reason)
			handlers.RespondBookingError(w, http.StatusConflict,
				bookingErr.Message, string(bookingErr.Kind), string(bookingErr.Reason))

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /reservations - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrProgramNotFound):
			h.logger.Warn("POST /reservations - Program not found: program_id=%d", req.ProgramID)
			handlers.RespondNotFound(w, msgProgramNotFound)

		case errors.Is(err, createBooking.ErrUpstreamUnavailable):
			h.logger.Error("POST /reservations - Upstream unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgUpstreamUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: room_id=%d, program_id=%d, error=%v",
				req.RoomID, req.ProgramID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, room_id=%d",
		result.ReservationID, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
