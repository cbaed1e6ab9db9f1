package hacomono

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// GetStudioRoom получает комнату
func (c *Client) GetStudioRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	var room StudioRoom
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/master/studio-rooms/%d", roomID),
		route:  "/master/studio-rooms/{id}",
	}, map[string]interface{}{"studio_room": &room})
	if err != nil {
		return nil, err
	}

	return &domain.Room{
		ID:                 room.ID,
		StudioID:           room.StudioID,
		GranularityMinutes: room.GranularityMinutes,
	}, nil
}

// GetProgram получает программу
func (c *Client) GetProgram(ctx context.Context, programID int64) (*domain.Program, error) {
	var p Program
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/master/programs/%d", programID),
		route:  "/master/programs/{id}",
	}, map[string]interface{}{"program": &p})
	if err != nil {
		return nil, err
	}
	return toProgram(&p), nil
}

// GetInstructors привязка сотрудников к студиям: id -> студии (пустой список = без ограничений)
func (c *Client) GetInstructors(ctx context.Context) (map[int64][]int64, error) {
	list, err := fetchAll[Instructor](ctx, c, "/master/instructors", "/master/instructors", "instructors", nil)
	if err != nil {
		return nil, err
	}

	result := make(map[int64][]int64, len(list))
	for _, in := range list {
		result[in.ID] = in.StudioIDs
	}
	return result, nil
}

// GetResources оборудование студии
func (c *Client) GetResources(ctx context.Context, studioID int64) ([]domain.ResourceRecord, error) {
	list, err := fetchAll[Resource](ctx, c, "/master/resources", "/master/resources", "resources",
		map[string]interface{}{"studio_id": studioID})
	if err != nil {
		return nil, err
	}

	result := make([]domain.ResourceRecord, 0, len(list))
	for _, r := range list {
		result = append(result, domain.ResourceRecord{
			ID:       r.ID,
			StudioID: r.StudioID,
			Capacity: r.MaxConcurrent,
			DailyCap: r.MaxReservationsPerDay,
		})
	}
	return result, nil
}

// GetStudioLessons фиксированные занятия студии за период; занимают ведущего сотрудника
func (c *Client) GetStudioLessons(ctx context.Context, studioID int64, dateFrom, dateTo string) ([]domain.ExistingBooking, error) {
	list, err := fetchAll[StudioLesson](ctx, c, "/master/studio-lessons", "/master/studio-lessons", "studio_lessons",
		map[string]interface{}{"studio_id": studioID, "date_from": dateFrom, "date_to": dateTo})
	if err != nil {
		return nil, err
	}

	result := make([]domain.ExistingBooking, 0, len(list))
	for _, l := range list {
		if l.InstructorID == 0 {
			continue
		}
		iv, err := c.parseInterval(l.StartAt, l.EndAt)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.ExistingBooking{
			EntityID: l.InstructorID,
			Interval: iv,
			Kind:     domain.BookingKindFixedLesson,
		})
	}
	return result, nil
}

// GetShiftSlots ручные блокировки времени студии на дату
func (c *Client) GetShiftSlots(ctx context.Context, studioID int64, date string) ([]domain.BreakBlock, error) {
	list, err := fetchAll[ShiftSlot](ctx, c, "/master/shift-slots", "/master/shift-slots", "shift_slots",
		map[string]interface{}{"studio_id": studioID, "date": date})
	if err != nil {
		return nil, err
	}

	result := make([]domain.BreakBlock, 0, len(list))
	for _, s := range list {
		block, ok, err := toBreakBlock(c, s)
		if err != nil {
			return nil, err
		}
		if !ok {
			c.log.Warn("hacomono shift slot %d has unknown entity type %q, skipped", s.ID, s.EntityType)
			continue
		}
		result = append(result, block)
	}
	return result, nil
}
