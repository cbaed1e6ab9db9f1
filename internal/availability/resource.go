package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// satisfyTerms finds, for every term, the resource items free for the term window
// One term without items is enough to make the slot unavailable
func satisfyTerms(snap *domain.Snapshot, program *domain.Program, slot domain.Slot) ([]TermCandidates, Reason, error) {
	durationMinutes := int(slot.Duration / time.Minute)
	terms := program.ResourceRule.EffectiveTerms(durationMinutes)

	result := make([]TermCandidates, 0, len(terms))
	for _, term := range terms {
		if err := term.Validate(); err != nil {
			return nil, "", malformed("program %d: %v", program.ID, err)
		}
		if term.EndMinute > durationMinutes {
			return nil, "", malformed("program %d term %q ends at %d after the service end %d",
				program.ID, term.Name, term.EndMinute, durationMinutes)
		}

		window := term.Window(slot.Start)
		items := make([]int64, 0, len(term.ResourceIDs))
		seen := make(map[int64]struct{}, len(term.ResourceIDs))

		for _, id := range term.ResourceIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			ok, err := resourceFree(snap, id, window, slot.DateKey())
			if err != nil {
				return nil, "", err
			}
			if ok {
				items = append(items, id)
			}
		}

		if len(items) == 0 {
			return nil, ReasonNoAvailableResource, nil
		}
		result = append(result, TermCandidates{Term: term, Window: window, ResourceIDs: items})
	}

	return result, ReasonAvailable, nil
}

// resourceFree checks one item for the window:
// registered at the studio, not under a break block, below capacity and below its daily cap
func resourceFree(snap *domain.Snapshot, resourceID int64, window domain.Interval, date string) (bool, error) {
	record, ok := snap.Resource(resourceID)
	if !ok || record.StudioID != snap.StudioID() {
		return false, nil
	}

	concurrent := make([]domain.Interval, 0)
	sameDay := 0

	for _, occ := range snap.ResourceOccupancy(resourceID) {
		if err := occ.Interval.Validate(); err != nil {
			return false, malformed("resource %d occupancy: %v", resourceID, err)
		}

		if occ.Kind.IsBreak() {
			if occ.Interval.Overlaps(window) {
				return false, nil
			}
			continue
		}

		if occ.Interval.Start.In(window.Start.Location()).Format(domain.DateFormat) == date {
			sameDay++
		}
		if occ.Interval.Overlaps(window) {
			concurrent = append(concurrent, occ.Interval)
		}
	}

	if record.DailyCap != nil && sameDay >= *record.DailyCap {
		return false, nil
	}

	return peakConcurrency(concurrent, window) < record.EffectiveCapacity(), nil
}

// peakConcurrency maximum number of intervals active at once inside window
func peakConcurrency(intervals []domain.Interval, window domain.Interval) int {
	type event struct {
		at    time.Time
		delta int
	}

	events := make([]event, 0, len(intervals)*2)
	for _, iv := range intervals {
		start, end := iv.Start, iv.End
		if start.Before(window.Start) {
			start = window.Start
		}
		if end.After(window.End) {
			end = window.End
		}
		if !end.After(start) {
			continue
		}
		events = append(events, event{at: start, delta: 1}, event{at: end, delta: -1})
	}

	// на одном моменте окончание обрабатывается раньше начала: интервалы полуоткрытые
	sort.Slice(events, func(i, j int) bool {
		if events[i].at.Equal(events[j].at) {
			return events[i].delta < events[j].delta
		}
		return events[i].at.Before(events[j].at)
	})

	active, peak := 0, 0
	for _, ev := range events {
		active += ev.delta
		peak = max(peak, active)
	}
	return peak
}
