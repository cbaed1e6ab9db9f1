package cancel_booking

import (
	cancelBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ReservationID int64  `json:"reservationId"`
	AttemptID     string `json:"attemptId,omitempty"`
	Message       string `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ReservationID: resp.ReservationID,
		AttemptID:     resp.AttemptID,
		Message:       resp.Message,
	}
}
