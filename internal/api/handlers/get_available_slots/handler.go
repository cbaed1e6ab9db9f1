package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
)

const (
	msgInvalidRoomID       = "некорректный ID комнаты"
	msgInvalidProgramID    = "некорректный ID программы"
	msgMissingFrom         = "дата начала обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange        = "некорректный диапазон дат"
	msgRangeTooLong        = "диапазон дат не может превышать 31 день"
	msgRoomNotFound        = "комната не найдена"
	msgProgramNotFound     = "программа не найдена"
	msgInvalidProgram      = "программа настроена некорректно"
	msgUpstreamUnavailable = "система бронирования временно недоступна"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/programs/{programId}/slots
// Query params: from (required, YYYY-MM-DD), to (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем roomId из URL
	roomID, err := strconv.ParseInt(vars["roomId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/programs/{id}/slots - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	// Извлекаем programId из URL
	programID, err := strconv.ParseInt(vars["programId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/programs/{id}/slots - Invalid program ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProgramID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /rooms/{id}/programs/{id}/slots - Missing from date")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	// Формируем запрос к use case (с парсингом дат)
	useCaseReq, err := ToUseCaseRequest(roomID, programID, fromStr, r.URL.Query().Get("to"), h.location)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/programs/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrRangeTooLong):
			h.logger.Warn("GET /rooms/{id}/programs/{id}/slots - Range too long: room_id=%d", roomID)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/programs/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getAvailableSlots.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/programs/{id}/slots - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, getAvailableSlots.ErrProgramNotFound):
			h.logger.Warn("GET /rooms/{id}/programs/{id}/slots - Program not found: program_id=%d", programID)
			handlers.RespondNotFound(w, msgProgramNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidProgram):
			h.logger.Warn("GET /rooms/{id}/programs/{id}/slots - Invalid program: program_id=%d", programID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidProgram)

		case errors.Is(err, getAvailableSlots.ErrUpstreamUnavailable):
			h.logger.Error("GET /rooms/{id}/programs/{id}/slots - Upstream unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgUpstreamUnavailable)

		default:
			h.logger.Error("GET /rooms/{id}/programs/{id}/slots - Failed to get slots: room_id=%d, program_id=%d, error=%v",
				roomID, programID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /rooms/{id}/programs/{id}/slots - Slots retrieved successfully: room_id=%d, program_id=%d, days=%d",
		roomID, programID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
