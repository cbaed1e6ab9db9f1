package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/hacomono"
	"github.com/m04kA/SMC-ReservationService/internal/service/snapshot"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// PathBooking метка пути оценки в метриках
const PathBooking = "booking"

const guestNotePrefix = "Web予約ゲスト: "

// Options настройки бронирования
type Options struct {
	FreshSnapshot bool  // перечитывать данные платформы перед оценкой
	TicketID      int64 // チケット для гостевых бронирований
	SendMail      bool  // письмо гостю от платформы
}

// UseCase use case для создания бронирования
type UseCase struct {
	provider     SnapshotProvider
	resolver     SlotResolver
	client       UpstreamClient
	classifier   RejectionClassifier
	attemptRepo  AttemptRepository
	invalidator  SnapshotInvalidator
	metrics      MetricsRecorder
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	provider SnapshotProvider,
	resolver SlotResolver,
	client UpstreamClient,
	classifier RejectionClassifier,
	attemptRepo AttemptRepository,
	invalidator SnapshotInvalidator,
	metrics MetricsRecorder,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		provider:     provider,
		resolver:     resolver,
		client:       client,
		classifier:   classifier,
		attemptRepo:  attemptRepo,
		invalidator:  invalidator,
		metrics:      metrics,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Назначение выбирается один раз; отказ платформы не повторяется с другим назначением
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: room=%d, program=%d, start=%s, extension=%d",
		req.RoomID, req.ProgramID, req.StartAt.Format(time.RFC3339), req.ExtensionMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	start := req.StartAt.In(uc.client.Location())

	// 3. Получаем программу и длительность с продлением
	program, err := uc.provider.Program(ctx, req.ProgramID)
	if err != nil {
		return nil, uc.mapProviderError(err)
	}

	duration, err := program.DurationMinutes(req.ExtensionMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: program=%d: %v", req.ProgramID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	attempt := &domain.ReservationAttempt{
		RoomID:          req.RoomID,
		ProgramID:       req.ProgramID,
		StartAt:         start,
		DurationMinutes: duration,
	}

	// 4. Загружаем снапшот на дату начала
	snap, err := uc.provider.Load(ctx, snapshot.Request{
		RoomID:    req.RoomID,
		ProgramID: req.ProgramID,
		From:      start,
		To:        start,
		Fresh:     uc.opts.FreshSnapshot,
	})
	if err != nil {
		return nil, uc.mapProviderError(err)
	}
	attempt.StudioID = snap.StudioID()

	// 5. Оцениваем слот и выбираем назначение
	slot := domain.Slot{Start: start, Duration: time.Duration(duration) * time.Minute}
	assignment, err := uc.resolver.ResolveAt(now, snap, program, slot)
	if err != nil {
		return nil, uc.handleResolveError(ctx, attempt, err)
	}
	uc.observeSlot(availability.ReasonAvailable)

	attempt.StaffID = ptr.Ptr(assignment.StaffID)
	attempt.ResourceIDs = assignment.ResourceIDs()

	// 6. Создаем гостя
	memberID, err := uc.client.CreateMember(ctx, hacomono.GuestMember{
		Name:        req.Guest.Name,
		NameKana:    req.Guest.NameKana,
		MailAddress: req.Guest.Email,
		Tel:         req.Guest.Phone,
		IsGuest:     true,
		StudioID:    snap.StudioID(),
		Note:        guestNotePrefix + req.Guest.Note,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to create guest member: %v", err)
		return nil, uc.handleUpstreamError(ctx, attempt, err)
	}

	// 7. Создаем бронирование с одним сотрудником и оборудованием по термам
	reservation, err := uc.client.CreateChoiceReservation(ctx, hacomono.ChoiceReservationRequest{
		MemberID:         memberID,
		StudioRoomID:     req.RoomID,
		ProgramID:        req.ProgramID,
		TicketID:         uc.opts.TicketID,
		InstructorIDs:    []int64{assignment.StaffID},
		StartAt:          uc.client.FormatStartAt(start),
		ExtensionMinutes: req.ExtensionMinutes,
		ResourceIDSet:    resourceBindings(start, assignment),
		ReservationNote:  req.Guest.Note,
		IsSendMail:       uc.opts.SendMail,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: reservation for member=%d rejected: %v", memberID, err)
		return nil, uc.handleUpstreamError(ctx, attempt, err)
	}

	// 8. Журнал и инвалидация кэша; ошибки не отменяют созданное бронирование
	attempt.Outcome = domain.OutcomeCreated
	attempt.ReservationID = ptr.Ptr(reservation.ID)
	saved := uc.journal(ctx, attempt)
	uc.invalidate(ctx, req.RoomID)

	if uc.metrics != nil {
		uc.metrics.ObserveBookingAttempt(string(domain.OutcomeCreated), "")
	}

	uc.logger.Info("CreateBooking: reservation id=%d created for room=%d, staff=%d, resources=%v",
		reservation.ID, req.RoomID, assignment.StaffID, attempt.ResourceIDs)

	return &Response{
		ReservationID:   reservation.ID,
		MemberID:        memberID,
		AttemptID:       saved.ID,
		StaffID:         assignment.StaffID,
		ResourceIDs:     attempt.ResourceIDs,
		StartAt:         start,
		DurationMinutes: duration,
		Message:         SuccessMessage,
	}, nil
}

// handleResolveError локальная недоступность или некорректные данные
func (uc *UseCase) handleResolveError(ctx context.Context, attempt *domain.ReservationAttempt, err error) error {
	var unavailable *availability.UnavailableError
	if errors.As(err, &unavailable) {
		kind := unavailable.Kind()
		uc.observeSlot(unavailable.Reason)
		uc.logger.Info("CreateBooking: slot %s unavailable: %s", attempt.StartAt.Format(domain.DateTimeFormat), unavailable.Reason)

		attempt.Outcome = domain.OutcomeUnavailable
		attempt.Reason = ptr.Ptr(string(unavailable.Reason))
		attempt.ErrorKind = ptr.Ptr(string(kind))
		uc.journal(ctx, attempt)
		uc.observeAttempt(attempt)

		return &BookingError{Kind: kind, Reason: unavailable.Reason, Message: unavailable.Reason.Message()}
	}

	uc.logger.Error("CreateBooking: cannot evaluate slot %s: %v", attempt.StartAt.Format(domain.DateTimeFormat), err)
	attempt.Outcome = domain.OutcomeFailed
	attempt.Message = ptr.Ptr(err.Error())
	uc.journal(ctx, attempt)
	uc.observeAttempt(attempt)

	return fmt.Errorf("%w: failed to evaluate slot: %v", ErrInternal, err)
}

// handleUpstreamError отказ платформы сопоставляется виду ошибки, сообщение сохраняется
func (uc *UseCase) handleUpstreamError(ctx context.Context, attempt *domain.ReservationAttempt, err error) error {
	if kindName, message, ok := uc.classifier.Classify(err); ok {
		kind, valid := availability.ParseBookingErrorKind(kindName)
		if !valid {
			kind = availability.KindUpstreamValidation
		}

		attempt.Outcome = domain.OutcomeRejected
		attempt.ErrorKind = ptr.Ptr(string(kind))
		attempt.Message = ptr.Ptr(message)
		uc.journal(ctx, attempt)
		uc.observeAttempt(attempt)

		return &BookingError{Kind: kind, Message: message}
	}

	attempt.Outcome = domain.OutcomeFailed
	attempt.Message = ptr.Ptr(err.Error())
	uc.journal(ctx, attempt)
	uc.observeAttempt(attempt)

	if errors.Is(err, hacomono.ErrUnavailable) || errors.Is(err, hacomono.ErrRateLimited) ||
		errors.Is(err, hacomono.ErrUnauthorized) {
		uc.logger.Error("CreateBooking: upstream unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	uc.logger.Error("CreateBooking: upstream call failed: %v", err)
	return fmt.Errorf("%w: upstream call failed: %v", ErrInternal, err)
}

func (uc *UseCase) mapProviderError(err error) error {
	switch {
	case errors.Is(err, snapshot.ErrRoomNotFound):
		uc.logger.Warn("CreateBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrRoomNotFound, err)
	case errors.Is(err, snapshot.ErrProgramNotFound):
		uc.logger.Warn("CreateBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrProgramNotFound, err)
	case errors.Is(err, snapshot.ErrUpstream):
		uc.logger.Error("CreateBooking: upstream error: %v", err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	default:
		uc.logger.Error("CreateBooking: failed to load snapshot: %v", err)
		return fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
	}
}

// journal пишет попытку; ошибка журнала только логируется
func (uc *UseCase) journal(ctx context.Context, attempt *domain.ReservationAttempt) *domain.ReservationAttempt {
	saved, err := uc.attemptRepo.Create(ctx, attempt)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to journal attempt outcome=%s: %v", attempt.Outcome, err)
		return attempt
	}
	return saved
}

func (uc *UseCase) invalidate(ctx context.Context, roomID int64) {
	if uc.invalidator == nil {
		return
	}
	removed, err := uc.invalidator.InvalidateRoom(ctx, roomID)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate snapshots for room=%d: %v", roomID, err)
		return
	}
	uc.logger.Info("CreateBooking: invalidated %d snapshots for room=%d", removed, roomID)
}

func (uc *UseCase) observeSlot(reason availability.Reason) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotEvaluation(PathBooking, string(reason))
	}
}

func (uc *UseCase) observeAttempt(attempt *domain.ReservationAttempt) {
	if uc.metrics != nil {
		uc.metrics.ObserveBookingAttempt(string(attempt.Outcome), ptr.Deref(attempt.ErrorKind, ""))
	}
}

// resourceBindings оборудование по термам в минутах от начала услуги
func resourceBindings(start time.Time, a availability.Assignment) []hacomono.ResourceBinding {
	if !a.HasResources() {
		return nil
	}

	bindings := make([]hacomono.ResourceBinding, 0, len(a.Resources))
	for _, r := range a.Resources {
		bindings = append(bindings, hacomono.ResourceBinding{
			ResourceID:   r.ResourceID,
			StartMinutes: int(r.Window.Start.Sub(start) / time.Minute),
			EndMinutes:   int(r.Window.End.Sub(start) / time.Minute),
		})
	}
	return bindings
}
