package availability

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const minutesPerDay = 24 * 60

// Window displayed hour range of a day in minutes from midnight: [StartMinute, EndMinute)
type Window struct {
	StartMinute int
	EndMinute   int
}

// Grid ordered candidate cells for a date range
// All() can be iterated any number of times and never touches the snapshot
type Grid struct {
	days        []time.Time
	window      Window
	granularity int
	duration    time.Duration
}

// NewGrid builds the grid of cells from..to (inclusive, by calendar date in from's location),
// stepping by the room granularity across the window
func NewGrid(from, to time.Time, window Window, granularityMinutes, durationMinutes int) (*Grid, error) {
	if granularityMinutes <= 0 {
		return nil, malformed("granularity must be positive, got %d", granularityMinutes)
	}
	if durationMinutes <= 0 {
		return nil, malformed("service duration must be positive, got %d", durationMinutes)
	}
	if window.StartMinute < 0 || window.EndMinute > minutesPerDay || window.EndMinute <= window.StartMinute {
		return nil, malformed("invalid display window [%d, %d)", window.StartMinute, window.EndMinute)
	}

	loc := from.Location()
	first := dateOnly(from, loc)
	last := dateOnly(to.In(loc), loc)
	if last.Before(first) {
		return nil, malformed("inverted date range %s..%s", first.Format(domain.DateFormat), last.Format(domain.DateFormat))
	}

	days := make([]time.Time, 0)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	return &Grid{
		days:        days,
		window:      window,
		granularity: granularityMinutes,
		duration:    time.Duration(durationMinutes) * time.Minute,
	}, nil
}

// Days calendar dates covered by the grid
func (g *Grid) Days() []time.Time {
	return g.days
}

// CellsPerDay number of cells on every date
func (g *Grid) CellsPerDay() int {
	span := g.window.EndMinute - g.window.StartMinute
	return (span + g.granularity - 1) / g.granularity
}

// Len total number of cells
func (g *Grid) Len() int {
	return len(g.days) * g.CellsPerDay()
}

// All yields the slots date by date, time by time
func (g *Grid) All() iter.Seq[domain.Slot] {
	return func(yield func(domain.Slot) bool) {
		for _, day := range g.days {
			y, m, d := day.Date()
			for minute := g.window.StartMinute; minute < g.window.EndMinute; minute += g.granularity {
				// time.Date нормализует минуты, поэтому ячейки следуют настенному времени и при переходе на летнее время
				start := time.Date(y, m, d, 0, minute, 0, 0, day.Location())
				if !yield(domain.Slot{Start: start, Duration: g.duration}) {
					return
				}
			}
		}
	}
}

// WindowFromBusinessHours widest opening range across the non-holiday days, or fallback
func WindowFromBusinessHours(hours []domain.BusinessHour, fallback Window) Window {
	w := Window{StartMinute: minutesPerDay, EndMinute: 0}
	found := false

	for _, bh := range hours {
		if bh.IsHoliday || bh.Open.Validate() != nil {
			continue
		}
		found = true

		day := dateOnly(bh.Open.Start, bh.Open.Start.Location())
		open := int(bh.Open.Start.Sub(day) / time.Minute)
		closeAt := int(bh.Open.End.Sub(day) / time.Minute)
		if closeAt > minutesPerDay {
			closeAt = minutesPerDay
		}

		w.StartMinute = min(w.StartMinute, open)
		w.EndMinute = max(w.EndMinute, closeAt)
	}

	if !found || w.EndMinute <= w.StartMinute {
		return fallback
	}
	return w
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
