package handle_webhook

import (
	handleWebhook "github.com/m04kA/SMC-ReservationService/internal/usecase/handle_webhook"
)

// WebhookEvent уведомление платформы; прочие поля игнорируются
type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

// WebhookData затронутые комнаты
type WebhookData struct {
	StudioRoomID  int64   `json:"studio_room_id,omitempty"`
	StudioRoomIDs []int64 `json:"studio_room_ids,omitempty"`
}

// WebhookResponse HTTP response model
type WebhookResponse struct {
	Event       string `json:"event"`
	Scope       string `json:"scope"`
	Invalidated int    `json:"invalidated"`
}

// ToUseCaseRequest конвертирует событие в модель use case
func (e *WebhookEvent) ToUseCaseRequest() *handleWebhook.Request {
	roomIDs := make([]int64, 0, len(e.Data.StudioRoomIDs)+1)
	if e.Data.StudioRoomID != 0 {
		roomIDs = append(roomIDs, e.Data.StudioRoomID)
	}
	roomIDs = append(roomIDs, e.Data.StudioRoomIDs...)

	return &handleWebhook.Request{
		Event:   e.Event,
		RoomIDs: roomIDs,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *handleWebhook.Response) *WebhookResponse {
	return &WebhookResponse{
		Event:       resp.Event,
		Scope:       string(resp.Scope),
		Invalidated: resp.Invalidated,
	}
}
