package attempt

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const (
	tableName = "reservation_attempts"

	defaultListLimit = 100
)

var columns = []string{
	"id",
	"studio_id",
	"room_id",
	"program_id",
	"start_at",
	"duration_minutes",
	"staff_id",
	"resource_ids",
	"outcome",
	"reason",
	"error_kind",
	"reservation_id",
	"message",
	"created_at",
}

// Repository журнал попыток бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет попытку бронирования
// ID генерируется, если не задан; created_at проставляет база
func (r *Repository) Create(ctx context.Context, attempt *domain.ReservationAttempt) (*domain.ReservationAttempt, error) {
	if !attempt.Outcome.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOutcome, attempt.Outcome)
	}
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	resourceIDs := attempt.ResourceIDs
	if resourceIDs == nil {
		resourceIDs = []int64{}
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(columns[:len(columns)-1]...).
		Values(
			attempt.ID,
			attempt.StudioID,
			attempt.RoomID,
			attempt.ProgramID,
			attempt.StartAt,
			attempt.DurationMinutes,
			attempt.StaffID,
			pq.Array(resourceIDs),
			attempt.Outcome,
			attempt.Reason,
			attempt.ErrorKind,
			attempt.ReservationID,
			attempt.Message,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&attempt.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return attempt, nil
}

// GetByID получает запись журнала по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ReservationAttempt, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetByID", query, args)
}

// GetByReservationID последняя успешная попытка для бронирования платформы
func (r *Repository) GetByReservationID(ctx context.Context, reservationID int64) (*domain.ReservationAttempt, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"reservation_id": reservationID, "outcome": domain.OutcomeCreated}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationID - build select query: %v", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetByReservationID", query, args)
}

// ListByRoomAndDate журнал комнаты с фильтрацией по периоду начала слота и исходу
//
// Пример: все отклонённые платформой попытки за день
//
//	day := time.Date(2026, 10, 20, 0, 0, 0, 0, loc)
//	outcome := domain.OutcomeRejected
//	filter := domain.AttemptsFilter{RoomID: 10, StartDate: &day, EndDate: &day, Outcome: &outcome}
func (r *Repository) ListByRoomAndDate(ctx context.Context, filter domain.AttemptsFilter) ([]*domain.ReservationAttempt, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	limit := filter.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"room_id": filter.RoomID}).
		OrderBy("start_at ASC", "created_at ASC").
		Limit(limit)

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		// конец периода включительно: до начала следующего дня
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": filter.EndDate.AddDate(0, 0, 1)})
	}
	if filter.Outcome != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"outcome": *filter.Outcome})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoomAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoomAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	attempts := make([]*domain.ReservationAttempt, 0)
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByRoomAndDate - scan attempt: %v", ErrScanRow, err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByRoomAndDate - iterate rows: %v", ErrScanRow, err)
	}

	return attempts, nil
}

func (r *Repository) getOne(ctx context.Context, op, query string, args []interface{}) (*domain.ReservationAttempt, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	a, err := scanAttempt(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAttemptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan attempt: %v", ErrScanRow, op, err)
	}
	return a, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttempt(row rowScanner) (*domain.ReservationAttempt, error) {
	var (
		a           domain.ReservationAttempt
		resourceIDs pq.Int64Array
	)

	err := row.Scan(
		&a.ID,
		&a.StudioID,
		&a.RoomID,
		&a.ProgramID,
		&a.StartAt,
		&a.DurationMinutes,
		&a.StaffID,
		&resourceIDs,
		&a.Outcome,
		&a.Reason,
		&a.ErrorKind,
		&a.ReservationID,
		&a.Message,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.ResourceIDs = []int64(resourceIDs)
	return &a, nil
}
