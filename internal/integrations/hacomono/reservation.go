package hacomono

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const statusCancelled = "CANCEL"

// GetChoiceSchedule расписание 自由枠 комнаты на дату (YYYY-MM-DD)
func (c *Client) GetChoiceSchedule(ctx context.Context, roomID int64, date string) (*DaySchedule, error) {
	q, err := json.Marshal(map[string]string{"date": date})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal query: %v", ErrInternal, err)
	}

	params := url.Values{}
	params.Set("studio_room_id", strconv.FormatInt(roomID, 10))
	params.Set("query", string(q))

	var schedule ChoiceSchedule
	err = c.do(ctx, request{
		method: http.MethodGet,
		path:   "/reservation/reservations/choice/schedule",
		route:  "/reservation/reservations/choice/schedule",
		query:  params,
	}, map[string]interface{}{"schedule": &schedule})
	if err != nil {
		return nil, err
	}

	return c.toDaySchedule(date, &schedule)
}

// CountProgramReservations количество действующих бронирований программы по датам
func (c *Client) CountProgramReservations(ctx context.Context, programID int64, dateFrom, dateTo string) (map[string]int, error) {
	list, err := fetchAll[Reservation](ctx, c, "/reservation/reservations", "/reservation/reservations", "reservations",
		map[string]interface{}{"program_id": programID, "date_from": dateFrom, "date_to": dateTo})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, r := range list {
		if r.Status == statusCancelled {
			continue
		}
		start, err := c.parseTime(r.StartAt)
		if err != nil {
			return nil, err
		}
		counts[start.Format(domain.DateFormat)]++
	}
	return counts, nil
}

// CreateChoiceReservation создает бронирование 自由枠
func (c *Client) CreateChoiceReservation(ctx context.Context, req ChoiceReservationRequest) (*Reservation, error) {
	var reservation Reservation
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/reservation/reservations/choice/reserve",
		route:  "/reservation/reservations/choice/reserve",
		body:   req,
	}, map[string]interface{}{"reservation": &reservation})
	if err != nil {
		return nil, err
	}
	if reservation.ID == 0 {
		return nil, fmt.Errorf("%w: reservation without id", ErrInvalidResponse)
	}
	return &reservation, nil
}

// CancelReservations отменяет бронирования
func (c *Client) CancelReservations(ctx context.Context, ids []int64) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		path:   "/reservation/reservations/cancel",
		route:  "/reservation/reservations/cancel",
		body:   cancelRequest{IDs: ids},
	}, nil)
}
