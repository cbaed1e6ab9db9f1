package availability

import (
	"slices"
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// blockage how an occupancy entry relates to the slot
type blockage int

const (
	blockNone blockage = iota
	blockPadding
	blockHard
)

// eligibleStaff staff who are on shift, serve the studio, are selectable and are free
func eligibleStaff(snap *domain.Snapshot, program *domain.Program, slot domain.Interval) ([]int64, Reason, error) {
	// 1. Персонал, чья смена покрывает слот целиком
	onShift, err := staffOnShift(snap.Shifts, slot)
	if err != nil {
		return nil, "", err
	}
	if len(onShift) == 0 {
		// никто не стоит в смене рядом со слотом: комната не укомплектована
		if anyShiftOverlaps(snap.Shifts, slot) {
			return nil, ReasonNoSelectableStaff, nil
		}
		return nil, ReasonOutsideHours, nil
	}

	// 2. Привязка к студии и правило выбора программы
	selectable := make([]int64, 0, len(onShift))
	for _, id := range onShift {
		if !snap.CanServeStudio(id) {
			continue
		}
		allowed, err := program.StaffRule.Allows(id)
		if err != nil {
			return nil, "", malformed("%v", err)
		}
		if allowed {
			selectable = append(selectable, id)
		}
	}
	if len(selectable) == 0 {
		return nil, ReasonNoSelectableStaff, nil
	}

	// 3. Занятость с учётом интервалов до/после
	before, after := program.Padding()
	free := make([]int64, 0, len(selectable))
	paddingOnly := false

	for _, id := range selectable {
		b, err := staffBlockage(snap.StaffOccupancy(id), slot, before, after)
		if err != nil {
			return nil, "", err
		}
		switch b {
		case blockNone:
			free = append(free, id)
		case blockPadding:
			paddingOnly = true
		}
	}

	if len(free) > 0 {
		return free, ReasonAvailable, nil
	}
	if paddingOnly {
		return nil, ReasonIntervalBlocked, nil
	}
	return nil, ReasonFullyBooked, nil
}

// staffBlockage strongest blockage among the occupancy entries
// Break blocks are never padded; ordinary bookings and fixed lessons are
func staffBlockage(occupancy []domain.ExistingBooking, slot domain.Interval, before, after time.Duration) (blockage, error) {
	result := blockNone
	for _, occ := range occupancy {
		if err := occ.Interval.Validate(); err != nil {
			return blockNone, malformed("staff %d occupancy: %v", occ.EntityID, err)
		}

		if occ.Interval.Overlaps(slot) {
			return blockHard, nil
		}
		if occ.Kind.IsBreak() {
			continue
		}
		if occ.Interval.Pad(before, after).Overlaps(slot) {
			result = blockPadding
		}
	}
	return result, nil
}

// staffOnShift distinct staff ids (first-seen order) whose merged shifts cover the slot
func staffOnShift(shifts []domain.StaffShift, slot domain.Interval) ([]int64, error) {
	order := make([]int64, 0)
	byStaff := make(map[int64][]domain.Interval)

	for _, sh := range shifts {
		if err := sh.Interval.Validate(); err != nil {
			return nil, malformed("staff %d shift: %v", sh.StaffID, err)
		}
		if _, seen := byStaff[sh.StaffID]; !seen {
			order = append(order, sh.StaffID)
		}
		byStaff[sh.StaffID] = append(byStaff[sh.StaffID], sh.Interval)
	}

	covered := make([]int64, 0, len(order))
	for _, id := range order {
		for _, iv := range mergeIntervals(byStaff[id]) {
			if iv.Contains(slot) {
				covered = append(covered, id)
				break
			}
		}
	}
	return covered, nil
}

// anyShiftOverlaps true when somebody is on duty during part of the slot
func anyShiftOverlaps(shifts []domain.StaffShift, slot domain.Interval) bool {
	for _, sh := range shifts {
		if sh.Interval.Overlaps(slot) {
			return true
		}
	}
	return false
}

// mergeIntervals joins overlapping and touching intervals; смежные смены 9-12 и 12-18 дают 9-18
func mergeIntervals(intervals []domain.Interval) []domain.Interval {
	if len(intervals) < 2 {
		return intervals
	}

	sorted := slices.Clone(intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []domain.Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
