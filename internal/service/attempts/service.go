package attempts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	attemptRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/attempt"
	"github.com/m04kA/SMC-ReservationService/internal/service/attempts/models"
)

// Service сервис чтения журнала попыток бронирования
type Service struct {
	attemptRepo AttemptRepository
	location    *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса журнала
func NewService(attemptRepo AttemptRepository, location *time.Location, logger Logger) *Service {
	return &Service{
		attemptRepo: attemptRepo,
		location:    location,
		logger:      logger,
	}
}

// GetByID получает запись журнала по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AttemptResponse, error) {
	s.logger.Info("GetByID: fetching attempt id=%s", id)

	if _, err := uuid.Parse(id); err != nil {
		s.logger.Warn("GetByID: invalid attempt id=%q", id)
		return nil, fmt.Errorf("%w: attempt id is not a uuid", ErrInvalidInput)
	}

	attempt, err := s.attemptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", err)
	}

	return models.FromDomainAttempt(attempt, s.location), nil
}

// GetByReservationID получает успешную попытку по ID бронирования платформы
func (s *Service) GetByReservationID(ctx context.Context, reservationID int64) (*models.AttemptResponse, error) {
	s.logger.Info("GetByReservationID: fetching attempt for reservation=%d", reservationID)

	if reservationID <= 0 {
		return nil, fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	attempt, err := s.attemptRepo.GetByReservationID(ctx, reservationID)
	if err != nil {
		return nil, s.mapRepoError("GetByReservationID", err)
	}

	return models.FromDomainAttempt(attempt, s.location), nil
}

// ListByRoom получает журнал комнаты с фильтрацией по периоду и исходу
//
// Примеры использования:
// - Весь журнал комнаты: ListByRoom(ctx, &ListAttemptsRequest{RoomID: 10})
// - Журнал за день: StartDate и EndDate указывают на одну дату
// - Только отказы платформы: Outcome = "rejected"
func (s *Service) ListByRoom(ctx context.Context, req *models.ListAttemptsRequest) (*models.AttemptListResponse, error) {
	s.logger.Info("ListByRoom: fetching attempts for room=%d", req.RoomID)

	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: room id must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByRoom: invalid filter for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	attempts, err := s.attemptRepo.ListByRoomAndDate(ctx, filter)
	if err != nil {
		s.logger.Error("ListByRoom: repository error for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: ListByRoom - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByRoom: fetched %d attempts for room=%d", len(attempts), req.RoomID)
	return models.FromDomainAttemptList(attempts, s.location), nil
}

func (s *Service) mapRepoError(op string, err error) error {
	if errors.Is(err, attemptRepo.ErrAttemptNotFound) {
		s.logger.Warn("%s: attempt not found", op)
		return ErrAttemptNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

