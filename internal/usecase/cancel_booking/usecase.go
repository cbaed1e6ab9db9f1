package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/attempt"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/hacomono"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	client      UpstreamClient
	attemptRepo AttemptRepository
	invalidator SnapshotInvalidator
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	client UpstreamClient,
	attemptRepo AttemptRepository,
	invalidator SnapshotInvalidator,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		client:      client,
		attemptRepo: attemptRepo,
		invalidator: invalidator,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: reservation=%d", req.ReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Отменяем на платформе
	if err := uc.client.CancelReservations(ctx, []int64{req.ReservationID}); err != nil {
		return nil, uc.mapUpstreamError(req.ReservationID, err)
	}

	resp := &Response{
		ReservationID: req.ReservationID,
		Message:       SuccessMessage,
	}

	// 3. Ищем исходную попытку, чтобы записать отмену на ту же комнату
	original, err := uc.attemptRepo.GetByReservationID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, attempt.ErrAttemptNotFound) {
			uc.logger.Warn("CancelBooking: reservation=%d not found in journal, cancellation not recorded", req.ReservationID)
		} else {
			uc.logger.Error("CancelBooking: failed to read journal for reservation=%d: %v", req.ReservationID, err)
		}
		uc.observe()
		return resp, nil
	}

	// 4. Записываем отмену; ошибка журнала не отменяет отмену на платформе
	cancelled := &domain.ReservationAttempt{
		StudioID:        original.StudioID,
		RoomID:          original.RoomID,
		ProgramID:       original.ProgramID,
		StartAt:         original.StartAt,
		DurationMinutes: original.DurationMinutes,
		StaffID:         original.StaffID,
		ResourceIDs:     original.ResourceIDs,
		Outcome:         domain.OutcomeCancelled,
		ReservationID:   ptr.Ptr(req.ReservationID),
	}
	saved, err := uc.attemptRepo.Create(ctx, cancelled)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to journal cancellation of reservation=%d: %v", req.ReservationID, err)
	} else {
		resp.AttemptID = saved.ID
	}
	resp.RoomID = original.RoomID

	// 5. Инвалидируем кэш комнаты, не дожидаясь webhook
	uc.invalidate(ctx, original.RoomID)
	uc.observe()

	uc.logger.Info("CancelBooking: reservation=%d cancelled, room=%d", req.ReservationID, original.RoomID)
	return resp, nil
}

func (uc *UseCase) mapUpstreamError(reservationID int64, err error) error {
	switch {
	case errors.Is(err, hacomono.ErrNotFound):
		uc.logger.Warn("CancelBooking: reservation=%d not found upstream", reservationID)
		return fmt.Errorf("%w: id=%d", ErrReservationNotFound, reservationID)
	case errors.Is(err, hacomono.ErrRejected):
		uc.logger.Warn("CancelBooking: reservation=%d cancellation rejected: %v", reservationID, err)
		var apiErr *hacomono.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return &CancelError{Message: apiErr.Message}
		}
		return &CancelError{Message: err.Error()}
	case errors.Is(err, hacomono.ErrUnavailable), errors.Is(err, hacomono.ErrRateLimited),
		errors.Is(err, hacomono.ErrUnauthorized):
		uc.logger.Error("CancelBooking: upstream unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	default:
		uc.logger.Error("CancelBooking: failed to cancel reservation=%d: %v", reservationID, err)
		return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
	}
}

func (uc *UseCase) invalidate(ctx context.Context, roomID int64) {
	if uc.invalidator == nil {
		return
	}
	removed, err := uc.invalidator.InvalidateRoom(ctx, roomID)
	if err != nil {
		uc.logger.Warn("CancelBooking: failed to invalidate snapshots for room=%d: %v", roomID, err)
		return
	}
	uc.logger.Info("CancelBooking: invalidated %d snapshots for room=%d", removed, roomID)
}

func (uc *UseCase) observe() {
	if uc.metrics != nil {
		uc.metrics.ObserveBookingAttempt(string(domain.OutcomeCancelled), "")
	}
}
