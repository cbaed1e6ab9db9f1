package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/snapshot"
)

// PathPreview метка пути оценки в метриках
const PathPreview = "preview"

// Options настройки календаря
type Options struct {
	MaxDays int                 // максимальный диапазон дат
	Window  availability.Window // окно отображения, если часы работы не заданы
}

// UseCase use case для получения календаря доступности
type UseCase struct {
	provider  SnapshotProvider
	evaluator SlotEvaluator
	metrics   MetricsRecorder
	opts      Options
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	provider SnapshotProvider,
	evaluator SlotEvaluator,
	metrics MetricsRecorder,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.MaxDays <= 0 || opts.MaxDays > domain.MaxPreviewDays {
		opts.MaxDays = domain.MaxPreviewDays
	}
	return &UseCase{
		provider:  provider,
		evaluator: evaluator,
		metrics:   metrics,
		opts:      opts,
		logger:    logger,
	}
}

// Execute выполняет use case получения календаря доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: room=%d, program=%d, range=%s..%s",
		req.RoomID, req.ProgramID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.opts.MaxDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем программу
	program, err := uc.provider.Program(ctx, req.ProgramID)
	if err != nil {
		return nil, uc.mapProviderError(err)
	}

	// 3. Получаем снапшот
	snap, err := uc.provider.Load(ctx, snapshot.Request{
		RoomID:    req.RoomID,
		ProgramID: req.ProgramID,
		From:      req.From,
		To:        req.To,
	})
	if err != nil {
		return nil, uc.mapProviderError(err)
	}

	// 4. Строим сетку: шаг комнаты, окно по часам работы
	granularity := snap.Room.GranularityMinutes
	if granularity <= 0 {
		granularity = domain.DefaultGranularityMinutes
	}
	window := availability.WindowFromBusinessHours(snap.BusinessHours, uc.opts.Window)

	grid, err := availability.NewGrid(req.From, req.To, window, granularity, program.ServiceMinutes)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: cannot build grid for program=%d: %v", req.ProgramID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidProgram, err)
	}

	// 5. Оцениваем каждую ячейку на один момент времени
	now := uc.evaluator.Now()
	cells := make([]Slot, 0, grid.Len())
	available := 0

	for slot := range grid.All() {
		result, err := uc.evaluator.EvaluateAt(now, snap, program, slot)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: cell %s skipped: %v", slot.Start.Format(domain.DateTimeFormat), err)
			uc.observe(StatusError)
			cells = append(cells, errorCell(slot))
			continue
		}

		uc.observe(string(result.Reason))
		if result.Reason.IsAvailable() {
			available++
		}
		cells = append(cells, cellFromResult(slot, result))
	}

	uc.logger.Info("GetAvailableSlots: evaluated %d cells for room=%d, program=%d, %d available",
		len(cells), req.RoomID, req.ProgramID, available)

	return &Response{
		RoomID:             req.RoomID,
		ProgramID:          req.ProgramID,
		GranularityMinutes: granularity,
		DurationMinutes:    program.ServiceMinutes,
		Days:               groupByDay(grid, cells),
	}, nil
}

func (uc *UseCase) mapProviderError(err error) error {
	switch {
	case errors.Is(err, snapshot.ErrRoomNotFound):
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return fmt.Errorf("%w: %v", ErrRoomNotFound, err)
	case errors.Is(err, snapshot.ErrProgramNotFound):
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return fmt.Errorf("%w: %v", ErrProgramNotFound, err)
	case errors.Is(err, snapshot.ErrInvalidRange):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, snapshot.ErrUpstream):
		uc.logger.Error("GetAvailableSlots: upstream error: %v", err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	default:
		uc.logger.Error("GetAvailableSlots: failed to load snapshot: %v", err)
		return fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
	}
}

func (uc *UseCase) observe(reason string) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotEvaluation(PathPreview, reason)
	}
}
