package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidOutcome возвращается при некорректном исходе
	ErrInvalidOutcome = errors.New("invalid attempt outcome")

	// ErrInvalidPeriod возвращается, когда начало периода позже конца
	ErrInvalidPeriod = errors.New("invalid period")
)

// MaxListLimit максимальный размер страницы журнала
const MaxListLimit = 500

// Request модели

// ListAttemptsRequest запрос журнала комнаты
type ListAttemptsRequest struct {
	RoomID    int64      `json:"roomId"`
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода включительно (опционально)
	Outcome   *string    `json:"outcome,omitempty"`   // Фильтр по исходу (опционально)
	Limit     uint64     `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAttemptsRequest) ToDomainFilter() (domain.AttemptsFilter, error) {
	filter := domain.AttemptsFilter{
		RoomID:    r.RoomID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Limit:     r.Limit,
	}

	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return filter, ErrInvalidPeriod
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	if r.Outcome != nil {
		outcome := domain.AttemptOutcome(*r.Outcome)
		if !outcome.IsValid() {
			return filter, ErrInvalidOutcome
		}
		filter.Outcome = &outcome
	}

	return filter, nil
}

// Response модели

// AttemptResponse запись журнала
type AttemptResponse struct {
	ID              string  `json:"id"`
	StudioID        int64   `json:"studioId"`
	RoomID          int64   `json:"roomId"`
	ProgramID       int64   `json:"programId"`
	StartAt         string  `json:"startAt"` // RFC3339 во временной зоне студии
	DurationMinutes int     `json:"durationMinutes"`
	StaffID         *int64  `json:"staffId,omitempty"`
	ResourceIDs     []int64 `json:"resourceIds"`
	Outcome         string  `json:"outcome"`
	Reason          *string `json:"reason,omitempty"`
	ErrorKind       *string `json:"errorKind,omitempty"`
	ReservationID   *int64  `json:"reservationId,omitempty"`
	Message         *string `json:"message,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// AttemptListResponse список записей журнала
type AttemptListResponse struct {
	Attempts []AttemptResponse `json:"attempts"`
	Total    int               `json:"total"`
}

// FromDomainAttempt конвертирует запись журнала в response
func FromDomainAttempt(a *domain.ReservationAttempt, loc *time.Location) *AttemptResponse {
	if loc == nil {
		loc = time.UTC
	}

	resourceIDs := a.ResourceIDs
	if resourceIDs == nil {
		resourceIDs = []int64{}
	}

	return &AttemptResponse{
		ID:              a.ID,
		StudioID:        a.StudioID,
		RoomID:          a.RoomID,
		ProgramID:       a.ProgramID,
		StartAt:         a.StartAt.In(loc).Format(time.RFC3339),
		DurationMinutes: a.DurationMinutes,
		StaffID:         a.StaffID,
		ResourceIDs:     resourceIDs,
		Outcome:         string(a.Outcome),
		Reason:          a.Reason,
		ErrorKind:       a.ErrorKind,
		ReservationID:   a.ReservationID,
		Message:         a.Message,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainAttemptList конвертирует список записей журнала в response
func FromDomainAttemptList(attempts []*domain.ReservationAttempt, loc *time.Location) *AttemptListResponse {
	responses := make([]AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		responses = append(responses, *FromDomainAttempt(a, loc))
	}

	return &AttemptListResponse{
		Attempts: responses,
		Total:    len(responses),
	}
}
