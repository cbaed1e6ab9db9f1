package cancel_booking

import "fmt"

func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservation_id must be positive", ErrInvalidInput)
	}
	return nil
}
