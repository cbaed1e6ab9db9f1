package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	RoomID             int64         `json:"roomId"`
	ProgramID          int64         `json:"programId"`
	GranularityMinutes int           `json:"granularityMinutes"`
	DurationMinutes    int           `json:"durationMinutes"`
	Days               []CalendarDay `json:"days"`
}

// CalendarDay ячейки одной даты
type CalendarDay struct {
	Date  string         `json:"date"` // "2026-10-20"
	Slots []CalendarSlot `json:"slots"`
}

// CalendarSlot модель ячейки календаря
type CalendarSlot struct {
	StartTime string `json:"startTime"` // "10:00"
	StartAt   string `json:"startAt"`   // RFC3339 во временной зоне студии
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	days := make([]CalendarDay, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]CalendarSlot, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = CalendarSlot{
				StartTime: slot.StartTime.String(),
				StartAt:   slot.StartAt.Format(time.RFC3339),
				Status:    slot.Status,
				Reason:    string(slot.Reason),
				Message:   slot.Message,
			}
		}
		days[i] = CalendarDay{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: slots,
		}
	}

	return &AvailableSlotsResponse{
		RoomID:             resp.RoomID,
		ProgramID:          resp.ProgramID,
		GranularityMinutes: resp.GranularityMinutes,
		DurationMinutes:    resp.DurationMinutes,
		Days:               days,
	}
}

// ToUseCaseRequest создает запрос use case; даты разбираются во временной зоне студии
// Пустой to означает один день
func ToUseCaseRequest(roomID, programID int64, fromStr, toStr string, loc *time.Location) (*getAvailableSlots.Request, error) {
	from, err := time.ParseInLocation(domain.DateFormat, fromStr, loc)
	if err != nil {
		return nil, err
	}

	to := from
	if toStr != "" {
		to, err = time.ParseInLocation(domain.DateFormat, toStr, loc)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableSlots.Request{
		RoomID:    roomID,
		ProgramID: programID,
		From:      from,
		To:        to,
	}, nil
}
