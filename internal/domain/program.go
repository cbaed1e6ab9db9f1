package domain

import (
	"fmt"
	"slices"
	"time"
)

// SelectionKind is the closed set of staff/resource selection variants
type SelectionKind string

const (
	// SelectionAll anyone/anything eligible, no explicit list
	SelectionAll SelectionKind = "ALL"
	// SelectionSelected must be one of an explicit id list
	SelectionSelected SelectionKind = "SELECTED"
	// SelectionFixed must be one of an explicit id list (fixed by the studio)
	SelectionFixed SelectionKind = "FIXED"
	// SelectionRandomAll system auto-assigns from everyone
	SelectionRandomAll SelectionKind = "RANDOM_ALL"
	// SelectionRandomSelected system auto-assigns from an explicit id list
	SelectionRandomSelected SelectionKind = "RANDOM_SELECTED"
)

// ParseSelectionKind parses an upstream tag; anything outside the closed set is an error
func ParseSelectionKind(s string) (SelectionKind, error) {
	k := SelectionKind(s)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// Validate checks the kind belongs to the closed set
func (k SelectionKind) Validate() error {
	switch k {
	case SelectionAll, SelectionSelected, SelectionFixed, SelectionRandomAll, SelectionRandomSelected:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSelectionKind, string(k))
	}
}

// HasExplicitList returns true for the variants bound to an explicit id list
func (k SelectionKind) HasExplicitList() (bool, error) {
	switch k {
	case SelectionSelected, SelectionFixed, SelectionRandomSelected:
		return true, nil
	case SelectionAll, SelectionRandomAll:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownSelectionKind, string(k))
	}
}

// StaffRule program's selectable staff rule
type StaffRule struct {
	Kind     SelectionKind `json:"kind"`
	StaffIDs []int64       `json:"staffIds,omitempty"`
}

// Allows reports whether the staff member is selectable under the rule
func (r StaffRule) Allows(staffID int64) (bool, error) {
	explicit, err := r.Kind.HasExplicitList()
	if err != nil {
		return false, err
	}
	if !explicit {
		return true, nil
	}
	return slices.Contains(r.StaffIDs, staffID), nil
}

// Term sub-window of the service duration with its own eligible items
// Bounds are minutes relative to the slot start: [StartMinute, EndMinute)
type Term struct {
	Name        string  `json:"name,omitempty"`
	StartMinute int     `json:"startMinute"`
	EndMinute   int     `json:"endMinute"`
	ResourceIDs []int64 `json:"resourceIds"`
}

// Validate checks the term bounds
func (t Term) Validate() error {
	if t.StartMinute < 0 || t.EndMinute <= t.StartMinute {
		return fmt.Errorf("%w: %q [%d, %d)", ErrInvalidTerm, t.Name, t.StartMinute, t.EndMinute)
	}
	return nil
}

// Window absolute interval of the term for a slot starting at start
func (t Term) Window(start time.Time) Interval {
	return Interval{
		Start: start.Add(time.Duration(t.StartMinute) * time.Minute),
		End:   start.Add(time.Duration(t.EndMinute) * time.Minute),
	}
}

// ResourceRule program's selectable resource rule
type ResourceRule struct {
	Kind        SelectionKind `json:"kind"`
	ResourceIDs []int64       `json:"resourceIds,omitempty"` // список для единственного окна, когда термы не заданы
	Terms       []Term        `json:"terms,omitempty"`
}

// RequiresBinding returns false for ALL/RANDOM_ALL: the upstream platform assigns
// equipment itself and no resource constraint applies
func (r ResourceRule) RequiresBinding() (bool, error) {
	return r.Kind.HasExplicitList()
}

// EffectiveTerms returns configured terms or one term spanning the whole duration
func (r ResourceRule) EffectiveTerms(durationMinutes int) []Term {
	if len(r.Terms) > 0 {
		return r.Terms
	}
	return []Term{{
		StartMinute: 0,
		EndMinute:   durationMinutes,
		ResourceIDs: r.ResourceIDs,
	}}
}

// Program bookable service definition, owned upstream
type Program struct {
	ID                     int64        `json:"id"`
	Name                   string       `json:"name"`
	ServiceMinutes         int          `json:"serviceMinutes"`
	MaxExtensionMinutes    *int         `json:"maxExtensionMinutes,omitempty"`
	BookingDeadlineMinutes int          `json:"bookingDeadlineMinutes"`
	BeforeIntervalMinutes  int          `json:"beforeIntervalMinutes"`
	AfterIntervalMinutes   int          `json:"afterIntervalMinutes"`
	DailyCap               *int         `json:"dailyCap,omitempty"`
	StaffRule              StaffRule    `json:"staffRule"`
	ResourceRule           ResourceRule `json:"resourceRule"`
}

// Validate rejects missing required configuration
func (p *Program) Validate() error {
	if p.ServiceMinutes <= 0 || p.ServiceMinutes > MaxServiceMinutes {
		return fmt.Errorf("%w: program %d serviceMinutes=%d", ErrInvalidProgram, p.ID, p.ServiceMinutes)
	}
	if p.BookingDeadlineMinutes < 0 || p.BeforeIntervalMinutes < 0 || p.AfterIntervalMinutes < 0 {
		return fmt.Errorf("%w: program %d has negative deadline or interval", ErrInvalidProgram, p.ID)
	}
	if p.DailyCap != nil && *p.DailyCap < 0 {
		return fmt.Errorf("%w: program %d dailyCap=%d", ErrInvalidProgram, p.ID, *p.DailyCap)
	}
	if err := p.StaffRule.Kind.Validate(); err != nil {
		return fmt.Errorf("%w: program %d staff rule: %v", ErrInvalidProgram, p.ID, err)
	}
	if err := p.ResourceRule.Kind.Validate(); err != nil {
		return fmt.Errorf("%w: program %d resource rule: %v", ErrInvalidProgram, p.ID, err)
	}
	for _, t := range p.ResourceRule.Terms {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: program %d: %v", ErrInvalidProgram, p.ID, err)
		}
	}
	return nil
}

// HasDailyCap returns true if the program limits bookings per day
func (p *Program) HasDailyCap() bool {
	return p.DailyCap != nil
}

// DurationMinutes service duration including a requested extension
func (p *Program) DurationMinutes(extensionMinutes int) (int, error) {
	if extensionMinutes < 0 {
		return 0, fmt.Errorf("%w: negative extension %d", ErrExtensionTooLong, extensionMinutes)
	}
	if extensionMinutes > 0 {
		if p.MaxExtensionMinutes == nil || extensionMinutes > *p.MaxExtensionMinutes {
			return 0, fmt.Errorf("%w: requested %d", ErrExtensionTooLong, extensionMinutes)
		}
	}
	return p.ServiceMinutes + extensionMinutes, nil
}

// Padding before/after interval applied around ordinary staff bookings
func (p *Program) Padding() (before, after time.Duration) {
	return time.Duration(p.BeforeIntervalMinutes) * time.Minute,
		time.Duration(p.AfterIntervalMinutes) * time.Minute
}
