package handle_webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	handleWebhook "github.com/m04kA/SMC-ReservationService/internal/usecase/handle_webhook"
)

const (
	msgInvalidPayload     = "некорректное тело webhook"
	msgInvalidationFailed = "не удалось обновить кэш"

	maxPayloadBytes = 1 << 20
)

type Handler struct {
	useCase HandleWebhookUseCase
	logger  Logger
}

func NewHandler(useCase HandleWebhookUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhooks/hacomono
// Токен проверяется middleware.WebhookToken
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /webhooks/hacomono - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.Warn("POST /webhooks/hacomono - Invalid JSON payload: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	result, err := h.useCase.Execute(r.Context(), event.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, handleWebhook.ErrInvalidInput):
			h.logger.Warn("POST /webhooks/hacomono - Invalid event: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayload)

		case errors.Is(err, handleWebhook.ErrInvalidationFailed):
			h.logger.Error("POST /webhooks/hacomono - Invalidation failed: event=%s, error=%v", event.Event, err)
			handlers.RespondServiceUnavailable(w, msgInvalidationFailed)

		default:
			h.logger.Error("POST /webhooks/hacomono - Failed to handle event=%s: %v", event.Event, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
