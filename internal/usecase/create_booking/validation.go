package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.ProgramID <= 0 {
		return fmt.Errorf("%w: programID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.ExtensionMinutes < 0 {
		return fmt.Errorf("%w: extensionMinutes must not be negative", ErrInvalidInput)
	}

	return validateGuest(&req.Guest)
}

// validateGuest проверяет обязательные поля гостя
func validateGuest(g *Guest) error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: guest name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(g.Email) == "" {
		return fmt.Errorf("%w: guest email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(g.Email); err != nil {
		return fmt.Errorf("%w: invalid guest email: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(g.Phone) == "" {
		return fmt.Errorf("%w: guest phone is required", ErrInvalidInput)
	}

	if utf8.RuneCountInString(g.Note) > domain.MaxGuestNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxGuestNoteLength)
	}

	return nil
}
