package domain

import (
	"slices"
	"time"
)

// BookingKind distinguishes what occupies a staff member or a resource
type BookingKind string

const (
	BookingKindOrdinary    BookingKind = "ordinary"
	BookingKindFixedLesson BookingKind = "fixed_lesson"
	BookingKindBreakBlock  BookingKind = "break_block"
)

// IsBreak returns true for manual break blocks (never padded)
func (k BookingKind) IsBreak() bool {
	return k == BookingKindBreakBlock
}

// EntityType owner type of a break block
type EntityType string

const (
	EntityStaff    EntityType = "staff"
	EntityResource EntityType = "resource"
)

// Room bookable studio room with its own display granularity
type Room struct {
	ID                 int64 `json:"id"`
	StudioID           int64 `json:"studioId"`
	GranularityMinutes int   `json:"granularityMinutes"`
}

// BusinessHour opening hours for a calendar date
type BusinessHour struct {
	Date      string   `json:"date"` // YYYY-MM-DD
	Open      Interval `json:"open"`
	IsHoliday bool     `json:"isHoliday"`
}

// StaffShift interval during which a staff member is on duty at the room
type StaffShift struct {
	StaffID  int64    `json:"staffId"`
	Interval Interval `json:"interval"`
}

// ExistingBooking occupied interval of a staff member or a resource
type ExistingBooking struct {
	EntityID int64       `json:"entityId"`
	Interval Interval    `json:"interval"`
	Kind     BookingKind `json:"kind"`
}

// BreakBlock manually entered unavailability window
type BreakBlock struct {
	EntityType EntityType `json:"entityType"`
	EntityID   int64      `json:"entityId"`
	Interval   Interval   `json:"interval"`
}

// ResourceRecord equipment registered at a studio
type ResourceRecord struct {
	ID       int64 `json:"id"`
	StudioID int64 `json:"studioId"`
	Capacity int   `json:"capacity"`
	DailyCap *int  `json:"dailyCap,omitempty"`
}

// EffectiveCapacity capacity with the default applied for unset values
func (r ResourceRecord) EffectiveCapacity() int {
	if r.Capacity < 1 {
		return DefaultResourceCapacity
	}
	return r.Capacity
}

// Snapshot read-only view of the upstream data for one room and date range
type Snapshot struct {
	Room             Room              `json:"room"`
	BusinessHours    []BusinessHour    `json:"businessHours"`
	Shifts           []StaffShift      `json:"shifts"`
	StaffBookings    []ExistingBooking `json:"staffBookings"`
	ResourceBookings []ExistingBooking `json:"resourceBookings"`
	Blocks           []BreakBlock      `json:"blocks"`

	// StaffStudios staff id -> studios they may serve; empty set means unrestricted
	StaffStudios map[int64][]int64 `json:"staffStudios"`

	Resources []ResourceRecord `json:"resources"`

	// ProgramDailyCounts date (YYYY-MM-DD) -> same-program booking count
	ProgramDailyCounts map[string]int `json:"programDailyCounts"`

	FetchedAt time.Time `json:"fetchedAt"`
}

// StudioID studio the room belongs to
func (s *Snapshot) StudioID() int64 {
	return s.Room.StudioID
}

// BusinessHourOn returns the business hour entry for the date
func (s *Snapshot) BusinessHourOn(date string) (BusinessHour, bool) {
	for _, bh := range s.BusinessHours {
		if bh.Date == date {
			return bh, true
		}
	}
	return BusinessHour{}, false
}

// ProgramCountOn returns the same-program booking count for the date
func (s *Snapshot) ProgramCountOn(date string) int {
	return s.ProgramDailyCounts[date]
}

// CanServeStudio applies the association rule: empty set is unrestricted
func (s *Snapshot) CanServeStudio(staffID int64) bool {
	studios := s.StaffStudios[staffID]
	if len(studios) == 0 {
		return true
	}
	return slices.Contains(studios, s.Room.StudioID)
}

// StaffOccupancy bookings and break blocks of a staff member
func (s *Snapshot) StaffOccupancy(staffID int64) []ExistingBooking {
	return s.occupancy(staffID, s.StaffBookings, EntityStaff)
}

// ResourceOccupancy bookings and break blocks of a resource
func (s *Snapshot) ResourceOccupancy(resourceID int64) []ExistingBooking {
	return s.occupancy(resourceID, s.ResourceBookings, EntityResource)
}

func (s *Snapshot) occupancy(entityID int64, bookings []ExistingBooking, entityType EntityType) []ExistingBooking {
	result := make([]ExistingBooking, 0)
	for _, b := range bookings {
		if b.EntityID == entityID {
			result = append(result, b)
		}
	}
	for _, bl := range s.Blocks {
		if bl.EntityType == entityType && bl.EntityID == entityID {
			result = append(result, ExistingBooking{
				EntityID: bl.EntityID,
				Interval: bl.Interval,
				Kind:     BookingKindBreakBlock,
			})
		}
	}
	return result
}

// Resource looks up a resource record by id
func (s *Snapshot) Resource(id int64) (ResourceRecord, bool) {
	for _, r := range s.Resources {
		if r.ID == id {
			return r, true
		}
	}
	return ResourceRecord{}, false
}

// Validate rejects inverted intervals anywhere in the snapshot
func (s *Snapshot) Validate() error {
	for _, bh := range s.BusinessHours {
		if bh.IsHoliday {
			continue
		}
		if err := bh.Open.Validate(); err != nil {
			return err
		}
	}
	for _, sh := range s.Shifts {
		if err := sh.Interval.Validate(); err != nil {
			return err
		}
	}
	for _, b := range s.StaffBookings {
		if err := b.Interval.Validate(); err != nil {
			return err
		}
	}
	for _, b := range s.ResourceBookings {
		if err := b.Interval.Validate(); err != nil {
			return err
		}
	}
	for _, bl := range s.Blocks {
		if err := bl.Interval.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Slot candidate (date, start-time) cell with the duration it is tested for
type Slot struct {
	Start    time.Time
	Duration time.Duration
}

// Interval concrete [Start, Start+Duration)
func (s Slot) Interval() Interval {
	return NewInterval(s.Start, s.Duration)
}

// DateKey calendar date of the slot start in its location
func (s Slot) DateKey() string {
	return s.Start.Format(DateFormat)
}
