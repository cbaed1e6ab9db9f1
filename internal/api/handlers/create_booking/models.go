package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID           int64        `json:"roomId"`
	ProgramID        int64        `json:"programId"`
	Date             string       `json:"date"`      // "2026-10-20"
	StartTime        string       `json:"startTime"` // "10:00"
	ExtensionMinutes int          `json:"extensionMinutes,omitempty"`
	Guest            GuestRequest `json:"guest"`
}

// GuestRequest данные гостя
type GuestRequest struct {
	Name     string `json:"name"`
	NameKana string `json:"nameKana,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Note     string `json:"note,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ReservationID   int64   `json:"reservationId"`
	MemberID        int64   `json:"memberId"`
	AttemptID       string  `json:"attemptId,omitempty"`
	StaffID         int64   `json:"staffId"`
	ResourceIDs     []int64 `json:"resourceIds"`
	StartAt         string  `json:"startAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Message         string  `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Дата и время начала разбираются во временной зоне студии
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		RoomID:           r.RoomID,
		ProgramID:        r.ProgramID,
		StartAt:          startTime.On(date),
		ExtensionMinutes: r.ExtensionMinutes,
		Guest: createBooking.Guest{
			Name:     r.Guest.Name,
			NameKana: r.Guest.NameKana,
			Email:    r.Guest.Email,
			Phone:    r.Guest.Phone,
			Note:     r.Guest.Note,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	resourceIDs := resp.ResourceIDs
	if resourceIDs == nil {
		resourceIDs = []int64{}
	}

	return &BookingResponse{
		ReservationID:   resp.ReservationID,
		MemberID:        resp.MemberID,
		AttemptID:       resp.AttemptID,
		StaffID:         resp.StaffID,
		ResourceIDs:     resourceIDs,
		StartAt:         resp.StartAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Message:         resp.Message,
	}
}
