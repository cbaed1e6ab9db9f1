package availability

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

const testDate = "2026-10-20"

func at(hh, mm int) time.Time {
	return time.Date(2026, 10, 20, hh, mm, 0, 0, time.UTC)
}

func iv(h1, m1, h2, m2 int) domain.Interval {
	return domain.Interval{Start: at(h1, m1), End: at(h2, m2)}
}

func slotAt(hh, mm, minutes int) domain.Slot {
	return domain.Slot{Start: at(hh, mm), Duration: time.Duration(minutes) * time.Minute}
}

// baseSnapshot open 09:00-21:00, one staff member on shift 09:00-21:00
func baseSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Room: domain.Room{ID: 10, StudioID: 1, GranularityMinutes: 30},
		BusinessHours: []domain.BusinessHour{
			{Date: testDate, Open: iv(9, 0, 21, 0)},
		},
		Shifts: []domain.StaffShift{
			{StaffID: 100, Interval: iv(9, 0, 21, 0)},
		},
		StaffStudios:       map[int64][]int64{},
		ProgramDailyCounts: map[string]int{},
	}
}

func baseProgram() *domain.Program {
	return &domain.Program{
		ID:             5,
		Name:           "Body care 60",
		ServiceMinutes: 60,
		StaffRule:      domain.StaffRule{Kind: domain.SelectionAll},
		ResourceRule:   domain.ResourceRule{Kind: domain.SelectionRandomAll},
	}
}

// newTestEvaluator "сейчас" за день до тестовой даты, без ограничения дальности
func newTestEvaluator(opts Options) *Evaluator {
	return NewEvaluator(opts, fixedClock{now: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)})
}

func evaluate(t *testing.T, e *Evaluator, snap *domain.Snapshot, p *domain.Program, slot domain.Slot) Result {
	t.Helper()
	res, err := e.Evaluate(snap, p, slot)
	require.NoError(t, err)
	return res
}

func TestEvaluate_ScenarioA_ShiftShorterThanHours(t *testing.T) {
	snap := baseSnapshot()
	snap.Shifts = []domain.StaffShift{{StaffID: 100, Interval: iv(9, 0, 18, 0)}}
	e := newTestEvaluator(Options{})
	p := baseProgram()

	res := evaluate(t, e, snap, p, slotAt(9, 0, 60))
	assert.Equal(t, ReasonAvailable, res.Reason)
	assert.Equal(t, []int64{100}, res.Staff)

	// слот заходит за конец смены, но не за часы работы
	res = evaluate(t, e, snap, p, slotAt(17, 30, 60))
	assert.Equal(t, ReasonNoSelectableStaff, res.Reason)

	// никого нет в смене вокруг слота
	res = evaluate(t, e, snap, p, slotAt(19, 0, 60))
	assert.Equal(t, ReasonOutsideHours, res.Reason)
}

func TestEvaluate_ScenarioB_PaddingAroundBooking(t *testing.T) {
	snap := baseSnapshot()
	snap.StaffBookings = []domain.ExistingBooking{
		{EntityID: 100, Interval: iv(10, 0, 11, 0), Kind: domain.BookingKindOrdinary},
	}
	p := baseProgram()
	p.ServiceMinutes = 30
	p.BeforeIntervalMinutes = 30
	p.AfterIntervalMinutes = 30
	e := newTestEvaluator(Options{})

	tests := []struct {
		name string
		slot domain.Slot
		want Reason
	}{
		{"inside padded window", slotAt(9, 30, 30), ReasonIntervalBlocked},
		{"touching padded start", slotAt(9, 0, 30), ReasonAvailable},
		{"touching padded end", slotAt(11, 30, 30), ReasonAvailable},
		{"overlapping the booking itself", slotAt(10, 30, 30), ReasonFullyBooked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluate(t, e, snap, p, tt.slot).Reason)
		})
	}
}

func TestEvaluate_BreakBlockIsNotPadded(t *testing.T) {
	snap := baseSnapshot()
	snap.Blocks = []domain.BreakBlock{
		{EntityType: domain.EntityStaff, EntityID: 100, Interval: iv(12, 0, 13, 0)},
	}
	p := baseProgram()
	p.BeforeIntervalMinutes = 30
	p.AfterIntervalMinutes = 30
	e := newTestEvaluator(Options{})

	assert.Equal(t, ReasonAvailable, evaluate(t, e, snap, p, slotAt(11, 0, 60)).Reason)
	assert.Equal(t, ReasonAvailable, evaluate(t, e, snap, p, slotAt(13, 0, 60)).Reason)
	assert.Equal(t, ReasonFullyBooked, evaluate(t, e, snap, p, slotAt(12, 30, 60)).Reason)
}

func TestEvaluate_FixedLessonIsPadded(t *testing.T) {
	snap := baseSnapshot()
	snap.StaffBookings = []domain.ExistingBooking{
		{EntityID: 100, Interval: iv(12, 0, 13, 0), Kind: domain.BookingKindFixedLesson},
	}
	p := baseProgram()
	p.AfterIntervalMinutes = 15
	e := newTestEvaluator(Options{})

	assert.Equal(t, ReasonIntervalBlocked, evaluate(t, e, snap, p, slotAt(13, 0, 60)).Reason)
	assert.Equal(t, ReasonAvailable, evaluate(t, e, snap, p, slotAt(13, 15, 60)).Reason)
}

func TestEvaluate_ScenarioC_ResourceCapacity(t *testing.T) {
	snap := baseSnapshot()
	snap.Resources = []domain.ResourceRecord{{ID: 7, StudioID: 1, Capacity: 1}}
	snap.ResourceBookings = []domain.ExistingBooking{
		{EntityID: 7, Interval: iv(14, 0, 15, 0), Kind: domain.BookingKindOrdinary},
	}
	p := baseProgram()
	p.ResourceRule = domain.ResourceRule{Kind: domain.SelectionSelected, ResourceIDs: []int64{7}}
	e := newTestEvaluator(Options{})

	assert.Equal(t, ReasonNoAvailableResource, evaluate(t, e, snap, p, slotAt(14, 0, 60)).Reason)

	res := evaluate(t, e, snap, p, slotAt(15, 0, 60))
	assert.Equal(t, ReasonAvailable, res.Reason)
	require.Len(t, res.Terms, 1)
	assert.Equal(t, []int64{7}, res.Terms[0].ResourceIDs)
}

func TestEvaluate_ResourceChecks(t *testing.T) {
	p := baseProgram()
	p.ResourceRule = domain.ResourceRule{Kind: domain.SelectionFixed, ResourceIDs: []int64{7}}
	e := newTestEvaluator(Options{})
	two := 2
	one := 1

	tests := []struct {
		name   string
		mutate func(s *domain.Snapshot)
		want   Reason
	}{
		{
			name: "other studio",
			mutate: func(s *domain.Snapshot) {
				s.Resources = []domain.ResourceRecord{{ID: 7, StudioID: 2, Capacity: 1}}
			},
			want: ReasonNoAvailableResource,
		},
		{
			name:   "unknown resource",
			mutate: func(s *domain.Snapshot) {},
			want:   ReasonNoAvailableResource,
		},
		{
			name: "break block on the resource",
			mutate: func(s *domain.Snapshot) {
				s.Resources = []domain.ResourceRecord{{ID: 7, StudioID: 1, Capacity: 3}}
				s.Blocks = []domain.BreakBlock{{EntityType: domain.EntityResource, EntityID: 7, Interval: iv(10, 30, 10, 45)}}
			},
			want: ReasonNoAvailableResource,
		},
		{
			name: "capacity headroom left",
			mutate: func(s *domain.Snapshot) {
				s.Resources = []domain.ResourceRecord{{ID: 7, StudioID: 1, Capacity: 2}}
				s.ResourceBookings = []domain.ExistingBooking{{EntityID: 7, Interval: iv(10, 0, 11, 0), Kind: domain.BookingKindOrdinary}}
			},
			want: ReasonAvailable,
		},
		{
			name: "sequential bookings never reach capacity 2",
			mutate: func(s *domain.Snapshot) {
				s.Resources = []domain.ResourceRecord{{ID: 7, StudioID: 1, Capacity: 2}}
				s.ResourceBookings = []domain.ExistingBooking{
					{EntityID: 7, Interval: iv(10, 0, 10, 30), Kind: domain.BookingKindOrdinary},
					{EntityID: 7, Interval: iv(10, 30, 11, 0), Kind: domain.BookingKindOrdinary},
				}
			},
			want: ReasonAvailable,
		},
		{
			name: "concurrent bookings reach capacity 2",
			mutate: func(s *domain.Snapshot) {
				s.Resources = []domain.ResourceRecord{{ID: 7, StudioID: 1, Capacity: 2}}
				s.ResourceBookings = []domain.ExistingBooking{
					{EntityID: 7, Interval: iv(10, 0, 11, 0), Kind: domain.BookingKindOrdinary},
					{EntityID: 7, Interval: iv(10, 15, 10, 45), Kind: domain.BookingKindOrdinary},
				}
			},
			want: ReasonNoAvailableResource,
		},
		{
			name: "resource daily cap",
			mutate: func(s *domain.Snapshot) {
				s.Resources = []domain.ResourceRecord{{ID: 7, StudioID: 1, Capacity: 5, DailyCap: &two}}
				s.ResourceBookings = []domain.ExistingBooking{
					{EntityID: 7, Interval: iv(12, 0, 13, 0), Kind: domain.BookingKindOrdinary},
					{EntityID: 7, Interval: iv(14, 0, 15, 0), Kind: domain.BookingKindOrdinary},
				}
			},
			want: ReasonNoAvailableResource,
		},
		{
			name: "resource daily cap not reached",
			mutate: func(s *domain.Snapshot) {
				s.Resources = []domain.ResourceRecord{{ID: 7, StudioID: 1, Capacity: 5, DailyCap: &one}}
			},
			want: ReasonAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := baseSnapshot()
			tt.mutate(snap)
			assert.Equal(t, tt.want, evaluate(t, e, snap, p, slotAt(10, 0, 60)).Reason)
		})
	}
}

func TestEvaluate_TermsAreIndependent(t *testing.T) {
	snap := baseSnapshot()
	snap.Resources = []domain.ResourceRecord{
		{ID: 7, StudioID: 1, Capacity: 1},
		{ID: 8, StudioID: 1, Capacity: 1},
	}
	// 7 занят во второй половине, 8 в первой
	snap.ResourceBookings = []domain.ExistingBooking{
		{EntityID: 7, Interval: iv(10, 20, 11, 0), Kind: domain.BookingKindOrdinary},
		{EntityID: 8, Interval: iv(10, 0, 10, 20), Kind: domain.BookingKindOrdinary},
	}
	p := baseProgram()
	p.ResourceRule = domain.ResourceRule{
		Kind: domain.SelectionSelected,
		Terms: []domain.Term{
			{Name: "warm-up", StartMinute: 0, EndMinute: 20, ResourceIDs: []int64{8, 7}},
			{Name: "main", StartMinute: 20, EndMinute: 60, ResourceIDs: []int64{7, 8}},
		},
	}
	e := newTestEvaluator(Options{})

	res := evaluate(t, e, snap, p, slotAt(10, 0, 60))
	require.Equal(t, ReasonAvailable, res.Reason)
	require.Len(t, res.Terms, 2)
	assert.Equal(t, []int64{7}, res.Terms[0].ResourceIDs)
	assert.Equal(t, []int64{8}, res.Terms[1].ResourceIDs)

	// второй терм без свободного оборудования
	snap.ResourceBookings = append(snap.ResourceBookings,
		domain.ExistingBooking{EntityID: 8, Interval: iv(10, 30, 10, 40), Kind: domain.BookingKindOrdinary})
	assert.Equal(t, ReasonNoAvailableResource, evaluate(t, e, snap, p, slotAt(10, 0, 60)).Reason)
}

func TestEvaluate_ScenarioD_ResourceRuleAll(t *testing.T) {
	snap := baseSnapshot()
	snap.ResourceBookings = []domain.ExistingBooking{
		{EntityID: 7, Interval: iv(14, 0, 15, 0), Kind: domain.BookingKindOrdinary},
	}
	snap.Blocks = []domain.BreakBlock{
		{EntityType: domain.EntityResource, EntityID: 7, Interval: iv(9, 0, 21, 0)},
	}
	p := baseProgram()
	p.ResourceRule = domain.ResourceRule{Kind: domain.SelectionAll, ResourceIDs: []int64{7}}
	e := newTestEvaluator(Options{})

	res := evaluate(t, e, snap, p, slotAt(14, 0, 60))
	assert.Equal(t, ReasonAvailable, res.Reason)
	assert.Empty(t, res.Terms)
}

func TestEvaluate_SkipResourceCheck(t *testing.T) {
	snap := baseSnapshot()
	p := baseProgram()
	p.ResourceRule = domain.ResourceRule{Kind: domain.SelectionSelected, ResourceIDs: []int64{7}}

	preview := newTestEvaluator(Options{})
	authority := preview.WithOptions(Options{SkipResourceCheck: true})

	assert.Equal(t, ReasonNoAvailableResource, evaluate(t, preview, snap, p, slotAt(10, 0, 60)).Reason)
	assert.Equal(t, ReasonAvailable, evaluate(t, authority, snap, p, slotAt(10, 0, 60)).Reason)
}

func TestEvaluate_ScenarioE_DailyCap(t *testing.T) {
	snap := baseSnapshot()
	snap.ProgramDailyCounts[testDate] = 2
	// персонал полностью занят: лимит всё равно важнее
	snap.StaffBookings = []domain.ExistingBooking{
		{EntityID: 100, Interval: iv(9, 0, 21, 0), Kind: domain.BookingKindOrdinary},
	}
	p := baseProgram()
	limit := 2
	p.DailyCap = &limit
	e := newTestEvaluator(Options{})

	for hh := 9; hh < 20; hh++ {
		assert.Equal(t, ReasonDailyLimitReached, evaluate(t, e, snap, p, slotAt(hh, 0, 60)).Reason)
	}

	snap.ProgramDailyCounts[testDate] = 1
	assert.Equal(t, ReasonFullyBooked, evaluate(t, e, snap, p, slotAt(9, 0, 60)).Reason)
}

func TestEvaluate_Temporal(t *testing.T) {
	snap := baseSnapshot()
	p := baseProgram()
	p.BookingDeadlineMinutes = 120
	now := at(8, 0)

	e := NewEvaluator(Options{MinLead: time.Hour, MaxHorizon: 24 * time.Hour}, fixedClock{now: now})

	tests := []struct {
		name string
		slot domain.Slot
		want Reason
	}{
		{"before lead time", slotAt(8, 30, 60), ReasonTooSoon},
		{"inside deadline", slotAt(9, 30, 60), ReasonDeadlinePassed},
		{"exactly at deadline", slotAt(10, 0, 60), ReasonAvailable},
		{"beyond horizon", domain.Slot{Start: now.Add(25 * time.Hour), Duration: time.Hour}, ReasonTooFar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluate(t, e, snap, p, tt.slot).Reason)
		})
	}
}

func TestEvaluate_BusinessHours(t *testing.T) {
	p := baseProgram()
	e := newTestEvaluator(Options{})

	snap := baseSnapshot()
	assert.Equal(t, ReasonOutsideHours, evaluate(t, e, snap, p, slotAt(20, 30, 60)).Reason,
		"duration overruns the closing time")
	assert.Equal(t, ReasonOutsideHours, evaluate(t, e, snap, p, slotAt(8, 0, 60)).Reason)

	snap.BusinessHours = nil
	assert.Equal(t, ReasonOutsideHours, evaluate(t, e, snap, p, slotAt(10, 0, 60)).Reason)

	snap.BusinessHours = []domain.BusinessHour{{Date: testDate, IsHoliday: true}}
	assert.Equal(t, ReasonHoliday, evaluate(t, e, snap, p, slotAt(10, 0, 60)).Reason)
}

func TestEvaluate_PrecedenceIsTotal(t *testing.T) {
	snap := baseSnapshot()
	snap.BusinessHours = []domain.BusinessHour{{Date: testDate, IsHoliday: true}}
	p := baseProgram()

	e := NewEvaluator(Options{MinLead: 48 * time.Hour}, fixedClock{now: at(7, 0)})
	assert.Equal(t, ReasonTooSoon, evaluate(t, e, snap, p, slotAt(10, 0, 60)).Reason)
}

func TestEvaluate_StaffFilters(t *testing.T) {
	p := baseProgram()
	e := newTestEvaluator(Options{})

	t.Run("association excludes the studio", func(t *testing.T) {
		snap := baseSnapshot()
		snap.StaffStudios[100] = []int64{2, 3}
		assert.Equal(t, ReasonNoSelectableStaff, evaluate(t, e, snap, p, slotAt(10, 0, 60)).Reason)
	})

	t.Run("not in the selected list", func(t *testing.T) {
		snap := baseSnapshot()
		selected := baseProgram()
		selected.StaffRule = domain.StaffRule{Kind: domain.SelectionSelected, StaffIDs: []int64{200}}
		assert.Equal(t, ReasonNoSelectableStaff, evaluate(t, e, snap, selected, slotAt(10, 0, 60)).Reason)
	})

	t.Run("adjacent shifts cover the slot", func(t *testing.T) {
		snap := baseSnapshot()
		snap.Shifts = []domain.StaffShift{
			{StaffID: 100, Interval: iv(9, 0, 12, 0)},
			{StaffID: 100, Interval: iv(12, 0, 18, 0)},
		}
		assert.Equal(t, ReasonAvailable, evaluate(t, e, snap, p, slotAt(11, 30, 60)).Reason)
	})

	t.Run("snapshot order of eligible staff", func(t *testing.T) {
		snap := baseSnapshot()
		snap.Shifts = []domain.StaffShift{
			{StaffID: 300, Interval: iv(9, 0, 21, 0)},
			{StaffID: 100, Interval: iv(9, 0, 21, 0)},
			{StaffID: 200, Interval: iv(9, 0, 21, 0)},
		}
		snap.StaffBookings = []domain.ExistingBooking{
			{EntityID: 300, Interval: iv(10, 0, 11, 0), Kind: domain.BookingKindOrdinary},
		}
		res := evaluate(t, e, snap, p, slotAt(10, 0, 60))
		assert.Equal(t, []int64{100, 200}, res.Staff)
	})

	t.Run("one candidate padding-blocked, another hard-blocked", func(t *testing.T) {
		snap := baseSnapshot()
		snap.Shifts = append(snap.Shifts, domain.StaffShift{StaffID: 200, Interval: iv(9, 0, 21, 0)})
		snap.StaffBookings = []domain.ExistingBooking{
			{EntityID: 100, Interval: iv(10, 0, 11, 0), Kind: domain.BookingKindOrdinary},
			{EntityID: 200, Interval: iv(11, 0, 11, 30), Kind: domain.BookingKindOrdinary},
		}
		padded := baseProgram()
		padded.BeforeIntervalMinutes = 30
		assert.Equal(t, ReasonIntervalBlocked, evaluate(t, e, snap, padded, slotAt(10, 30, 30)).Reason)
	})
}

func TestEvaluate_MalformedInput(t *testing.T) {
	e := newTestEvaluator(Options{})

	t.Run("program without duration", func(t *testing.T) {
		p := baseProgram()
		p.ServiceMinutes = 0
		_, err := e.Evaluate(baseSnapshot(), p, slotAt(10, 0, 60))
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("unknown selection kind", func(t *testing.T) {
		p := baseProgram()
		p.StaffRule.Kind = "SOMEBODY"
		_, err := e.Evaluate(baseSnapshot(), p, slotAt(10, 0, 60))
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("inverted shift", func(t *testing.T) {
		snap := baseSnapshot()
		snap.Shifts = []domain.StaffShift{{StaffID: 100, Interval: iv(18, 0, 9, 0)}}
		_, err := e.Evaluate(snap, baseProgram(), slotAt(10, 0, 60))
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("term beyond service end", func(t *testing.T) {
		p := baseProgram()
		p.ResourceRule = domain.ResourceRule{
			Kind:  domain.SelectionSelected,
			Terms: []domain.Term{{StartMinute: 0, EndMinute: 90, ResourceIDs: []int64{7}}},
		}
		_, err := e.Evaluate(baseSnapshot(), p, slotAt(10, 0, 60))
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("malformed slot does not affect its neighbours", func(t *testing.T) {
		snap := baseSnapshot()
		snap.StaffBookings = []domain.ExistingBooking{
			{EntityID: 100, Interval: iv(15, 0, 14, 0), Kind: domain.BookingKindOrdinary},
		}
		_, err := e.Evaluate(snap, baseProgram(), slotAt(10, 0, 60))
		assert.ErrorIs(t, err, ErrMalformedInput)

		// у слота вне часов работы до проверки занятости дело не доходит
		res, err := e.Evaluate(snap, baseProgram(), slotAt(7, 0, 60))
		require.NoError(t, err)
		assert.Equal(t, ReasonOutsideHours, res.Reason)
	})
}

func TestEvaluate_Idempotent(t *testing.T) {
	snap := baseSnapshot()
	snap.StaffBookings = []domain.ExistingBooking{
		{EntityID: 100, Interval: iv(12, 0, 13, 0), Kind: domain.BookingKindOrdinary},
	}
	p := baseProgram()
	p.AfterIntervalMinutes = 15
	e := newTestEvaluator(Options{})

	grid, err := NewGrid(at(0, 0), at(0, 0), Window{StartMinute: 9 * 60, EndMinute: 21 * 60}, 30, 60)
	require.NoError(t, err)

	for slot := range grid.All() {
		first, err1 := e.Evaluate(snap, p, slot)
		second, err2 := e.Evaluate(snap, p, slot)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, first, second)
	}
}

func TestEvaluate_AvailableImpliesEligibleStaff(t *testing.T) {
	snap := baseSnapshot()
	snap.Shifts = append(snap.Shifts, domain.StaffShift{StaffID: 200, Interval: iv(12, 0, 18, 0)})
	snap.StaffStudios[200] = []int64{1}
	snap.StaffBookings = []domain.ExistingBooking{
		{EntityID: 100, Interval: iv(11, 0, 12, 0), Kind: domain.BookingKindOrdinary},
		{EntityID: 200, Interval: iv(14, 0, 15, 0), Kind: domain.BookingKindOrdinary},
	}
	snap.Blocks = []domain.BreakBlock{
		{EntityType: domain.EntityStaff, EntityID: 100, Interval: iv(15, 0, 16, 0)},
	}
	p := baseProgram()
	p.BeforeIntervalMinutes = 15
	p.AfterIntervalMinutes = 15
	e := newTestEvaluator(Options{})

	grid, err := NewGrid(at(0, 0), at(0, 0), Window{StartMinute: 9 * 60, EndMinute: 21 * 60}, 15, 60)
	require.NoError(t, err)

	for slot := range grid.All() {
		res := evaluate(t, e, snap, p, slot)
		if !res.Reason.IsAvailable() {
			continue
		}
		require.NotEmpty(t, res.Staff)
		for _, id := range res.Staff {
			for _, occ := range snap.StaffOccupancy(id) {
				check := occ.Interval
				if !occ.Kind.IsBreak() {
					check = check.Pad(p.Padding())
				}
				assert.False(t, check.Overlaps(slot.Interval()), "staff %d at %s", id, slot.Start)
			}
		}
	}
}

func TestPipeline_DeclaresPrecedence(t *testing.T) {
	declared := make([]Reason, 0)
	for _, st := range pipeline {
		for _, r := range st.reasons {
			if !slices.Contains(declared, r) {
				declared = append(declared, r)
			}
		}
	}
	declared = append(declared, ReasonAvailable)

	assert.Equal(t, Precedence(), declared)
}

func TestReason_Taxonomy(t *testing.T) {
	assert.Equal(t, 0, ReasonTooSoon.Rank())
	assert.Equal(t, len(Precedence())-1, ReasonAvailable.Rank())
	assert.False(t, Reason("maybe").Valid())
	assert.True(t, ReasonAvailable.IsAvailable())

	assert.Equal(t, KindOutOfRangeDatetime, KindForReason(ReasonHoliday))
	assert.Equal(t, KindNoStaffAvailable, KindForReason(ReasonIntervalBlocked))
	assert.Equal(t, KindNoResourceAvailable, KindForReason(ReasonNoAvailableResource))

	for _, r := range Precedence() {
		assert.NotEmpty(t, r.Message())
	}
}
