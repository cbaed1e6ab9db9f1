package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hh, mm int) time.Time {
	return time.Date(2026, 10, 20, hh, mm, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	slot := Interval{Start: at(11, 30), End: at(12, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"partial overlap", Interval{Start: at(11, 20), End: at(11, 40)}, true},
		{"touching before", Interval{Start: at(11, 0), End: at(11, 30)}, false},
		{"touching after", Interval{Start: at(12, 0), End: at(12, 30)}, false},
		{"covering", Interval{Start: at(11, 0), End: at(13, 0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slot.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(slot))
		})
	}
}

func TestInterval_ContainsAndValidate(t *testing.T) {
	open := Interval{Start: at(9, 0), End: at(21, 0)}
	assert.True(t, open.Contains(Interval{Start: at(20, 0), End: at(21, 0)}))
	assert.False(t, open.Contains(Interval{Start: at(20, 30), End: at(21, 30)}))

	assert.NoError(t, open.Validate())
	err := Interval{Start: at(10, 0), End: at(9, 0)}.Validate()
	assert.True(t, errors.Is(err, ErrInvertedInterval))
}

func TestSelectionKind(t *testing.T) {
	k, err := ParseSelectionKind("RANDOM_SELECTED")
	require.NoError(t, err)
	explicit, err := k.HasExplicitList()
	require.NoError(t, err)
	assert.True(t, explicit)

	_, err = ParseSelectionKind("SOMETIMES")
	assert.ErrorIs(t, err, ErrUnknownSelectionKind)

	_, err = SelectionKind("").HasExplicitList()
	assert.ErrorIs(t, err, ErrUnknownSelectionKind)
}

func TestStaffRule_Allows(t *testing.T) {
	all := StaffRule{Kind: SelectionAll}
	ok, err := all.Allows(42)
	require.NoError(t, err)
	assert.True(t, ok)

	fixed := StaffRule{Kind: SelectionFixed, StaffIDs: []int64{1, 2}}
	ok, err = fixed.Allows(2)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = fixed.Allows(3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResourceRule_EffectiveTerms(t *testing.T) {
	rule := ResourceRule{Kind: SelectionSelected, ResourceIDs: []int64{7}}
	terms := rule.EffectiveTerms(60)
	require.Len(t, terms, 1)
	assert.Equal(t, 0, terms[0].StartMinute)
	assert.Equal(t, 60, terms[0].EndMinute)
	assert.Equal(t, []int64{7}, terms[0].ResourceIDs)

	rule.Terms = []Term{{Name: "a", StartMinute: 0, EndMinute: 20}, {Name: "b", StartMinute: 20, EndMinute: 60}}
	assert.Len(t, rule.EffectiveTerms(60), 2)

	w := rule.Terms[1].Window(at(10, 0))
	assert.Equal(t, at(10, 20), w.Start)
	assert.Equal(t, at(11, 0), w.End)
}

func TestProgram_Validate(t *testing.T) {
	p := Program{
		ID:             1,
		ServiceMinutes: 60,
		StaffRule:      StaffRule{Kind: SelectionAll},
		ResourceRule:   ResourceRule{Kind: SelectionRandomAll},
	}
	require.NoError(t, p.Validate())

	missing := p
	missing.ServiceMinutes = 0
	assert.ErrorIs(t, missing.Validate(), ErrInvalidProgram)

	badTerm := p
	badTerm.ResourceRule = ResourceRule{Kind: SelectionSelected, Terms: []Term{{StartMinute: 30, EndMinute: 10}}}
	assert.ErrorIs(t, badTerm.Validate(), ErrInvalidProgram)

	badKind := p
	badKind.StaffRule.Kind = "ANY"
	assert.ErrorIs(t, badKind.Validate(), ErrInvalidProgram)
}

func TestProgram_DurationMinutes(t *testing.T) {
	maxExt := 30
	p := Program{ServiceMinutes: 60, MaxExtensionMinutes: &maxExt}

	d, err := p.DurationMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, 60, d)

	d, err = p.DurationMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, 90, d)

	_, err = p.DurationMinutes(45)
	assert.ErrorIs(t, err, ErrExtensionTooLong)

	noExt := Program{ServiceMinutes: 60}
	_, err = noExt.DurationMinutes(10)
	assert.ErrorIs(t, err, ErrExtensionTooLong)
}

func TestSnapshot_Lookups(t *testing.T) {
	s := &Snapshot{
		Room: Room{ID: 10, StudioID: 1},
		StaffStudios: map[int64][]int64{
			1: {},
			2: {1, 3},
			3: {3},
		},
		StaffBookings: []ExistingBooking{
			{EntityID: 1, Interval: Interval{Start: at(10, 0), End: at(11, 0)}, Kind: BookingKindOrdinary},
			{EntityID: 2, Interval: Interval{Start: at(12, 0), End: at(13, 0)}, Kind: BookingKindOrdinary},
		},
		Blocks: []BreakBlock{
			{EntityType: EntityStaff, EntityID: 1, Interval: Interval{Start: at(14, 0), End: at(15, 0)}},
			{EntityType: EntityResource, EntityID: 1, Interval: Interval{Start: at(16, 0), End: at(17, 0)}},
		},
		ProgramDailyCounts: map[string]int{"2026-10-20": 2},
	}

	assert.True(t, s.CanServeStudio(1))
	assert.True(t, s.CanServeStudio(2))
	assert.False(t, s.CanServeStudio(3))
	assert.True(t, s.CanServeStudio(99), "staff without an association entry is unrestricted")

	occ := s.StaffOccupancy(1)
	require.Len(t, occ, 2)
	assert.Equal(t, BookingKindBreakBlock, occ[1].Kind)

	assert.Equal(t, 2, s.ProgramCountOn("2026-10-20"))
	assert.Equal(t, 0, s.ProgramCountOn("2026-10-21"))
}
