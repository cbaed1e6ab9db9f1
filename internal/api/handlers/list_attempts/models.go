package list_attempts

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/attempts/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	roomID int64,
	fromStr string,
	toStr string,
	outcomeStr string,
	limitStr string,
	loc *time.Location,
) (*models.ListAttemptsRequest, error) {
	req := &models.ListAttemptsRequest{RoomID: roomID}

	// Парсим from если указан
	if fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, loc)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	// Парсим to если указан
	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, loc)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	if outcomeStr != "" {
		req.Outcome = &outcomeStr
	}

	if limitStr != "" {
		limit, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	return req, nil
}
