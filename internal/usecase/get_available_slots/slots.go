package get_available_slots

import (
	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// cellFromResult ячейка по результату оценки
func cellFromResult(slot domain.Slot, result availability.Result) Slot {
	status := StatusUnavailable
	if result.Reason.IsAvailable() {
		status = StatusAvailable
	}

	return Slot{
		StartTime: types.NewTimeString(slot.Start),
		StartAt:   slot.Start,
		Status:    status,
		Reason:    result.Reason,
		Message:   result.Reason.Message(),
	}
}

// errorCell ячейка, для которой оценка не выполнена
func errorCell(slot domain.Slot) Slot {
	return Slot{
		StartTime: types.NewTimeString(slot.Start),
		StartAt:   slot.Start,
		Status:    StatusError,
	}
}

// groupByDay раскладывает ячейки по датам сетки, сохраняя порядок
func groupByDay(grid *availability.Grid, cells []Slot) []Day {
	days := make([]Day, 0, len(grid.Days()))
	index := make(map[string]int, len(grid.Days()))

	for _, d := range grid.Days() {
		index[d.Format(domain.DateFormat)] = len(days)
		days = append(days, Day{Date: d, Slots: make([]Slot, 0, grid.CellsPerDay())})
	}

	for _, c := range cells {
		i, ok := index[c.StartAt.Format(domain.DateFormat)]
		if !ok {
			continue
		}
		days[i].Slots = append(days[i].Slots, c)
	}
	return days
}
