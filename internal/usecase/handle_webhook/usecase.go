package handle_webhook

import (
	"context"
	"fmt"
	"strings"
)

// UseCase use case для инвалидации кэша по событиям платформы
type UseCase struct {
	invalidator SnapshotInvalidator
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(invalidator SnapshotInvalidator, logger Logger) *UseCase {
	return &UseCase{
		invalidator: invalidator,
		logger:      logger,
	}
}

// Execute выполняет use case обработки события
// Событие без комнат очищает весь кэш
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("HandleWebhook: validation failed: %v", err)
		return nil, err
	}

	event := strings.ToLower(strings.TrimSpace(req.Event))
	resp := &Response{Event: event, Scope: ScopeIgnored}

	// 2. События, не влияющие на доступность, пропускаем
	if !invalidates(event) {
		uc.logger.Info("HandleWebhook: event %s ignored", event)
		return resp, nil
	}

	// 3. Без комнат очищаем весь кэш
	if len(req.RoomIDs) == 0 {
		removed, err := uc.invalidator.InvalidateAll(ctx)
		if err != nil {
			uc.logger.Error("HandleWebhook: event %s: failed to invalidate all snapshots: %v", event, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidationFailed, err)
		}
		resp.Scope = ScopeAll
		resp.Invalidated = removed
		uc.logger.Info("HandleWebhook: event %s invalidated all snapshots (%d)", event, removed)
		return resp, nil
	}

	// 4. Очищаем снапшоты каждой комнаты
	resp.Scope = ScopeRooms
	seen := make(map[int64]struct{}, len(req.RoomIDs))
	for _, roomID := range req.RoomIDs {
		if _, ok := seen[roomID]; ok {
			continue
		}
		seen[roomID] = struct{}{}

		removed, err := uc.invalidator.InvalidateRoom(ctx, roomID)
		if err != nil {
			uc.logger.Error("HandleWebhook: event %s: failed to invalidate room=%d: %v", event, roomID, err)
			return nil, fmt.Errorf("%w: room=%d: %v", ErrInvalidationFailed, roomID, err)
		}
		resp.Invalidated += removed
	}

	uc.logger.Info("HandleWebhook: event %s invalidated %d snapshots for rooms %v", event, resp.Invalidated, req.RoomIDs)
	return resp, nil
}
