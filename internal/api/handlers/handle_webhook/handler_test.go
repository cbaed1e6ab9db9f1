package handle_webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handleWebhook "github.com/m04kA/SMC-ReservationService/internal/usecase/handle_webhook"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type fakeInvalidator struct {
	rooms []int64
	all   int
	err   error
}

func (f *fakeInvalidator) InvalidateRoom(_ context.Context, roomID int64) (int, error) {
	f.rooms = append(f.rooms, roomID)
	return 1, f.err
}

func (f *fakeInvalidator) InvalidateAll(context.Context) (int, error) {
	f.all++
	return 5, f.err
}

func post(inv *fakeInvalidator, body string) *httptest.ResponseRecorder {
	uc := handleWebhook.NewUseCase(inv, logger.NewNop())
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/hacomono", strings.NewReader(body)))
	return rec
}

func TestHandle_RoomEvent(t *testing.T) {
	inv := &fakeInvalidator{}
	rec := post(inv, `{"event": "reservation.created", "data": {"studio_room_id": 7, "studio_room_ids": [8], "member_id": 1}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rooms", body.Scope)
	assert.Equal(t, 2, body.Invalidated)
	assert.Equal(t, []int64{7, 8}, inv.rooms)
}

func TestHandle_EventWithoutRooms(t *testing.T) {
	inv := &fakeInvalidator{}
	rec := post(inv, `{"event": "shift.updated"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, inv.all)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, post(&fakeInvalidator{}, `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, post(&fakeInvalidator{}, `{"data": {}}`).Code)
	assert.Equal(t, http.StatusServiceUnavailable,
		post(&fakeInvalidator{err: errors.New("redis down")}, `{"event": "program.updated"}`).Code)
}
