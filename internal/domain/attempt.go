package domain

import "time"

// AttemptOutcome represents how a booking attempt ended
type AttemptOutcome string

const (
	OutcomeCreated     AttemptOutcome = "created"
	OutcomeUnavailable AttemptOutcome = "unavailable" // отклонено локальной проверкой доступности
	OutcomeRejected    AttemptOutcome = "rejected"    // отклонено внешней платформой
	OutcomeFailed      AttemptOutcome = "failed"      // техническая ошибка
	OutcomeCancelled   AttemptOutcome = "cancelled"
)

// IsValid проверяет, что исход входит в допустимый набор
func (o AttemptOutcome) IsValid() bool {
	switch o {
	case OutcomeCreated, OutcomeUnavailable, OutcomeRejected, OutcomeFailed, OutcomeCancelled:
		return true
	default:
		return false
	}
}

// ReservationAttempt journal entry of one booking (or cancellation) attempt
type ReservationAttempt struct {
	ID              string
	StudioID        int64
	RoomID          int64
	ProgramID       int64
	StartAt         time.Time
	DurationMinutes int
	StaffID         *int64
	ResourceIDs     []int64
	Outcome         AttemptOutcome
	Reason          *string // причина недоступности слота (too-soon, fully-booked, ...)
	ErrorKind       *string // вид ошибки бронирования
	ReservationID   *int64  // ID бронирования во внешней платформе
	Message         *string // сообщение внешней платформы без изменений
	CreatedAt       time.Time
}

// IsSuccessful returns true if the upstream reservation was created
func (a *ReservationAttempt) IsSuccessful() bool {
	return a.Outcome == OutcomeCreated
}

// AttemptsFilter фильтр журнала попыток
type AttemptsFilter struct {
	RoomID    int64      // Обязательный параметр
	StartDate *time.Time // Начало периода (опционально)
	EndDate   *time.Time // Конец периода включительно (опционально)
	Outcome   *AttemptOutcome
	Limit     uint64
}
