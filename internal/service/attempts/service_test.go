package attempts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	attemptRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/attempt"
	"github.com/m04kA/SMC-ReservationService/internal/service/attempts/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

const attemptID = "5f1c2a8e-3b7d-4c55-9a51-2f0c9e7d1a10"

var tokyo = time.FixedZone("JST", 9*60*60)

type fakeRepo struct {
	attempt    *domain.ReservationAttempt
	list       []*domain.ReservationAttempt
	err        error
	lastFilter domain.AttemptsFilter
}

func (f *fakeRepo) GetByID(context.Context, string) (*domain.ReservationAttempt, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.attempt, nil
}

func (f *fakeRepo) GetByReservationID(context.Context, int64) (*domain.ReservationAttempt, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.attempt, nil
}

func (f *fakeRepo) ListByRoomAndDate(_ context.Context, filter domain.AttemptsFilter) ([]*domain.ReservationAttempt, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func sampleAttempt() *domain.ReservationAttempt {
	return &domain.ReservationAttempt{
		ID:              attemptID,
		StudioID:        3,
		RoomID:          7,
		ProgramID:       9,
		StartAt:         time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		StaffID:         ptr.Ptr(int64(11)),
		Outcome:         domain.OutcomeCreated,
		ReservationID:   ptr.Ptr(int64(555)),
		CreatedAt:       time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetByID(t *testing.T) {
	svc := NewService(&fakeRepo{attempt: sampleAttempt()}, tokyo, logger.NewNop())

	resp, err := svc.GetByID(context.Background(), attemptID)
	require.NoError(t, err)

	assert.Equal(t, attemptID, resp.ID)
	assert.Equal(t, "2026-10-20T10:00:00+09:00", resp.StartAt)
	assert.Equal(t, "created", resp.Outcome)
	assert.Equal(t, []int64{}, resp.ResourceIDs)
	assert.Equal(t, int64(555), *resp.ReservationID)
}

func TestGetByID_Errors(t *testing.T) {
	svc := NewService(&fakeRepo{}, tokyo, logger.NewNop())
	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, ErrInvalidInput)

	svc = NewService(&fakeRepo{err: attemptRepo.ErrAttemptNotFound}, tokyo, logger.NewNop())
	_, err = svc.GetByID(context.Background(), attemptID)
	require.ErrorIs(t, err, ErrAttemptNotFound)

	svc = NewService(&fakeRepo{err: errors.New("db down")}, tokyo, logger.NewNop())
	_, err = svc.GetByID(context.Background(), attemptID)
	require.ErrorIs(t, err, ErrInternal)
}

func TestGetByReservationID(t *testing.T) {
	svc := NewService(&fakeRepo{attempt: sampleAttempt()}, tokyo, logger.NewNop())

	resp, err := svc.GetByReservationID(context.Background(), 555)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.RoomID)

	_, err = svc.GetByReservationID(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByRoom(t *testing.T) {
	repo := &fakeRepo{list: []*domain.ReservationAttempt{sampleAttempt(), sampleAttempt()}}
	svc := NewService(repo, tokyo, logger.NewNop())

	day := time.Date(2026, 10, 20, 0, 0, 0, 0, tokyo)
	resp, err := svc.ListByRoom(context.Background(), &models.ListAttemptsRequest{
		RoomID:    7,
		StartDate: &day,
		EndDate:   &day,
		Outcome:   ptr.Ptr("rejected"),
		Limit:     10_000,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	require.NotNil(t, repo.lastFilter.Outcome)
	assert.Equal(t, domain.OutcomeRejected, *repo.lastFilter.Outcome)
	assert.Equal(t, uint64(models.MaxListLimit), repo.lastFilter.Limit)
}

func TestListByRoom_InvalidFilter(t *testing.T) {
	svc := NewService(&fakeRepo{}, tokyo, logger.NewNop())

	_, err := svc.ListByRoom(context.Background(), &models.ListAttemptsRequest{RoomID: 7, Outcome: ptr.Ptr("maybe")})
	require.ErrorIs(t, err, ErrInvalidInput)

	from := time.Date(2026, 10, 21, 0, 0, 0, 0, tokyo)
	to := time.Date(2026, 10, 20, 0, 0, 0, 0, tokyo)
	_, err = svc.ListByRoom(context.Background(), &models.ListAttemptsRequest{RoomID: 7, StartDate: &from, EndDate: &to})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListByRoom(context.Background(), &models.ListAttemptsRequest{})
	require.ErrorIs(t, err, ErrInvalidInput)
}
