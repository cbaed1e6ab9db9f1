package hacomono

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// форматы дат, которые встречаются в ответах платформы
var localLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
}

// parseTime RFC3339 или локальное время студии
func (c *Client) parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(c.location), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, c.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable time %q", ErrInvalidResponse, s)
}

func (c *Client) parseInterval(start, end string) (domain.Interval, error) {
	s, err := c.parseTime(start)
	if err != nil {
		return domain.Interval{}, err
	}
	e, err := c.parseTime(end)
	if err != nil {
		return domain.Interval{}, err
	}
	return domain.Interval{Start: s, End: e}, nil
}

// FormatStartAt формат start_at для создания бронирования: yyyy-MM-dd HH:mm:ss.fff
func (c *Client) FormatStartAt(t time.Time) string {
	return t.In(c.location).Format(domain.UpstreamDateTimeFormat)
}

// DaySchedule расписание комнаты на одну дату в терминах домена
type DaySchedule struct {
	StudioID         int64
	BusinessHour     *domain.BusinessHour // nil: часы работы не заданы
	Shifts           []domain.StaffShift
	StaffBookings    []domain.ExistingBooking
	ResourceBookings []domain.ExistingBooking
}

func (c *Client) toDaySchedule(date string, s *ChoiceSchedule) (*DaySchedule, error) {
	day := &DaySchedule{
		StudioID:         s.StudioRoomService.StudioID,
		Shifts:           make([]domain.StaffShift, 0, len(s.InstructorShifts)),
		StaffBookings:    make([]domain.ExistingBooking, 0, len(s.InstructorAssigns)),
		ResourceBookings: make([]domain.ExistingBooking, 0, len(s.ResourceAssigns)),
	}

	if s.Shift != nil {
		bh := domain.BusinessHour{Date: date, IsHoliday: s.Shift.IsHoliday}
		if !s.Shift.IsHoliday {
			open, err := c.parseInterval(s.Shift.StartAt, s.Shift.EndAt)
			if err != nil {
				return nil, err
			}
			bh.Open = open
		}
		day.BusinessHour = &bh
	}

	for _, sh := range s.InstructorShifts {
		iv, err := c.parseInterval(sh.StartAt, sh.EndAt)
		if err != nil {
			return nil, err
		}
		day.Shifts = append(day.Shifts, domain.StaffShift{StaffID: sh.InstructorID, Interval: iv})
	}

	for _, a := range s.InstructorAssigns {
		iv, err := c.parseInterval(a.StartAt, a.EndAt)
		if err != nil {
			return nil, err
		}
		day.StaffBookings = append(day.StaffBookings, domain.ExistingBooking{
			EntityID: a.EntityID,
			Interval: iv,
			Kind:     domain.BookingKindOrdinary,
		})
	}

	for _, a := range s.ResourceAssigns {
		iv, err := c.parseInterval(a.StartAt, a.EndAt)
		if err != nil {
			return nil, err
		}
		day.ResourceBookings = append(day.ResourceBookings, domain.ExistingBooking{
			EntityID: a.EntityID,
			Interval: iv,
			Kind:     domain.BookingKindOrdinary,
		})
	}

	return day, nil
}

// toProgram тип правила выбора переносится как есть; неизвестное значение
// отклоняется при оценке слота, а не при загрузке
func toProgram(p *Program) *domain.Program {
	staffIDs := make([]int64, 0, len(p.SelectableInstructors.Items))
	for _, it := range p.SelectableInstructors.Items {
		staffIDs = append(staffIDs, it.InstructorID)
	}

	resourceIDs := make([]int64, 0, len(p.SelectableResources.Items))
	for _, it := range p.SelectableResources.Items {
		resourceIDs = append(resourceIDs, it.ResourceID)
	}

	terms := make([]domain.Term, 0, len(p.SelectableResources.Terms))
	for _, t := range p.SelectableResources.Terms {
		ids := make([]int64, 0, len(t.Items))
		for _, it := range t.Items {
			ids = append(ids, it.ResourceID)
		}
		terms = append(terms, domain.Term{
			Name:        t.Name,
			StartMinute: t.StartMinutes,
			EndMinute:   t.EndMinutes,
			ResourceIDs: ids,
		})
	}

	return &domain.Program{
		ID:                     p.ID,
		Name:                   p.Name,
		ServiceMinutes:         p.ServiceMinutes,
		MaxExtensionMinutes:    p.MaxExtensionMinutes,
		BookingDeadlineMinutes: p.ReservableToMinutes,
		BeforeIntervalMinutes:  p.BeforeIntervalMinutes,
		AfterIntervalMinutes:   p.AfterIntervalMinutes,
		DailyCap:               p.MaxReservationsPerDay,
		StaffRule: domain.StaffRule{
			Kind:     domain.SelectionKind(p.SelectableInstructors.Type),
			StaffIDs: staffIDs,
		},
		ResourceRule: domain.ResourceRule{
			Kind:        domain.SelectionKind(p.SelectableResources.Type),
			ResourceIDs: resourceIDs,
			Terms:       terms,
		},
	}
}

func toBreakBlock(c *Client, s ShiftSlot) (domain.BreakBlock, bool, error) {
	var entity domain.EntityType
	switch s.EntityType {
	case "INSTRUCTOR":
		entity = domain.EntityStaff
	case "RESOURCE":
		entity = domain.EntityResource
	default:
		return domain.BreakBlock{}, false, nil
	}

	iv, err := c.parseInterval(s.StartAt, s.EndAt)
	if err != nil {
		return domain.BreakBlock{}, false, err
	}
	return domain.BreakBlock{EntityType: entity, EntityID: s.EntityID, Interval: iv}, true, nil
}
