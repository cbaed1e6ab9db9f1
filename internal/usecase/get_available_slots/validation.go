package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxDays int) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.ProgramID <= 0 {
		return fmt.Errorf("%w: programID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	// Количество дней включительно
	if days := daysInclusive(req.From, req.To); days > maxDays {
		return fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLong, days, maxDays)
	}

	return nil
}

func daysInclusive(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours()/24) + 1
}
