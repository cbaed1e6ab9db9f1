package domain

import (
	"fmt"
	"time"
)

// Interval half-open time interval [Start, End)
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval builds an interval starting at start and lasting d
func NewInterval(start time.Time, d time.Duration) Interval {
	return Interval{Start: start, End: start.Add(d)}
}

// Validate rejects empty and inverted intervals
func (i Interval) Validate() error {
	if i.Start.IsZero() || i.End.IsZero() {
		return fmt.Errorf("%w: zero bound", ErrInvertedInterval)
	}
	if !i.End.After(i.Start) {
		return fmt.Errorf("%w: [%s, %s)", ErrInvertedInterval,
			i.Start.Format(DateTimeFormat), i.End.Format(DateTimeFormat))
	}
	return nil
}

// Overlaps reports a real intersection; intervals that only touch do not overlap
//
// [11:30, 12:00) и [11:00, 11:30) не пересекаются
// [11:30, 12:00) и [11:20, 11:40) пересекаются
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Contains reports whether o lies fully inside i
func (i Interval) Contains(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

// Pad widens the interval by before/after
func (i Interval) Pad(before, after time.Duration) Interval {
	return Interval{Start: i.Start.Add(-before), End: i.End.Add(after)}
}

// Duration length of the interval
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
