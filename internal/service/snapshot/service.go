package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	snapshotCache "github.com/m04kA/SMC-ReservationService/internal/infra/cache/snapshot"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/hacomono"
)

// Результаты обращения к кэшу для метрик
const (
	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheBypass = "bypass"
	CacheError  = "error"
)

// параллельные запросы расписаний по датам; частоту все равно ограничивает клиент
const scheduleConcurrency = 4

// Request параметры загрузки снапшота
type Request struct {
	RoomID    int64
	ProgramID int64
	From      time.Time // дата начала, включительно
	To        time.Time // дата конца, включительно

	// Fresh не читает кэш и перезаписывает запись
	Fresh bool
}

// Service собирает снапшот из данных платформы и кэширует его
type Service struct {
	client  UpstreamClient
	cache   Cache
	metrics MetricsRecorder
	logger  Logger
	now     func() time.Time
}

// NewService создает новый экземпляр сервиса снапшотов
// cache может быть nil: тогда каждый запрос читает платформу
func NewService(client UpstreamClient, cache Cache, metrics MetricsRecorder, logger Logger) *Service {
	return &Service{
		client:  client,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Program получает программу; программы не кэшируются
func (s *Service) Program(ctx context.Context, programID int64) (*domain.Program, error) {
	program, err := s.client.GetProgram(ctx, programID)
	if err != nil {
		if errors.Is(err, hacomono.ErrNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrProgramNotFound, programID)
		}
		return nil, fmt.Errorf("%w: GetProgram - %v", ErrUpstream, err)
	}
	return program, nil
}

// Load возвращает снапшот комнаты для программы и диапазона дат
// Ошибки кэша не прерывают загрузку
func (s *Service) Load(ctx context.Context, req Request) (*domain.Snapshot, error) {
	from, to := dateOf(req.From), dateOf(req.To)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	}

	key := snapshotCache.Key{
		RoomID:    req.RoomID,
		ProgramID: req.ProgramID,
		From:      from.Format(domain.DateFormat),
		To:        to.Format(domain.DateFormat),
	}

	if s.cache != nil && !req.Fresh {
		snap, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			s.observe(CacheHit)
			return snap, nil
		case errors.Is(err, snapshotCache.ErrCacheMiss):
			s.observe(CacheMiss)
		default:
			s.observe(CacheError)
			s.logger.Warn("Load: snapshot cache read failed for room=%d: %v", req.RoomID, err)
		}
	} else {
		s.observe(CacheBypass)
	}

	snap, err := s.assemble(ctx, req.RoomID, req.ProgramID, from, to)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, snap); err != nil {
			s.logger.Warn("Load: snapshot cache write failed for room=%d: %v", req.RoomID, err)
		}
	}

	return snap, nil
}

// assemble читает платформу: комната, расписания по датам, фиксированные занятия,
// блокировки, сотрудники, оборудование и счетчики программы
func (s *Service) assemble(ctx context.Context, roomID, programID int64, from, to time.Time) (*domain.Snapshot, error) {
	room, err := s.client.GetStudioRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, hacomono.ErrNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrRoomNotFound, roomID)
		}
		return nil, fmt.Errorf("%w: GetStudioRoom - %v", ErrUpstream, err)
	}

	dates := datesBetween(from, to)
	dateFrom, dateTo := dates[0], dates[len(dates)-1]

	// 1. Расписания и блокировки по датам
	days := make([]*hacomono.DaySchedule, len(dates))
	blocks := make([][]domain.BreakBlock, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scheduleConcurrency)
	for i, date := range dates {
		g.Go(func() error {
			day, err := s.client.GetChoiceSchedule(gctx, roomID, date)
			if err != nil {
				return fmt.Errorf("GetChoiceSchedule %s: %w", date, err)
			}
			days[i] = day

			bl, err := s.client.GetShiftSlots(gctx, room.StudioID, date)
			if err != nil {
				return fmt.Errorf("GetShiftSlots %s: %w", date, err)
			}
			blocks[i] = bl
			return nil
		})
	}

	// 2. Данные на весь диапазон
	var (
		mu        sync.Mutex
		lessons   []domain.ExistingBooking
		studios   map[int64][]int64
		resources []domain.ResourceRecord
		counts    map[string]int
	)
	g.Go(func() error {
		l, err := s.client.GetStudioLessons(gctx, room.StudioID, dateFrom, dateTo)
		if err != nil {
			return fmt.Errorf("GetStudioLessons: %w", err)
		}
		mu.Lock()
		lessons = l
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		m, err := s.client.GetInstructors(gctx)
		if err != nil {
			return fmt.Errorf("GetInstructors: %w", err)
		}
		mu.Lock()
		studios = m
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		r, err := s.client.GetResources(gctx, room.StudioID)
		if err != nil {
			return fmt.Errorf("GetResources: %w", err)
		}
		mu.Lock()
		resources = r
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		c, err := s.client.CountProgramReservations(gctx, programID, dateFrom, dateTo)
		if err != nil {
			return fmt.Errorf("CountProgramReservations: %w", err)
		}
		mu.Lock()
		counts = c
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("assemble: failed to load snapshot for room=%d program=%d: %v", roomID, programID, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// 3. Сборка
	snap := &domain.Snapshot{
		Room:               *room,
		BusinessHours:      make([]domain.BusinessHour, 0, len(dates)),
		Shifts:             make([]domain.StaffShift, 0),
		StaffBookings:      make([]domain.ExistingBooking, 0),
		ResourceBookings:   make([]domain.ExistingBooking, 0),
		Blocks:             make([]domain.BreakBlock, 0),
		StaffStudios:       studios,
		Resources:          resources,
		ProgramDailyCounts: counts,
		FetchedAt:          s.now(),
	}
	for i, day := range days {
		if day.BusinessHour != nil {
			snap.BusinessHours = append(snap.BusinessHours, *day.BusinessHour)
		}
		snap.Shifts = append(snap.Shifts, day.Shifts...)
		snap.StaffBookings = append(snap.StaffBookings, day.StaffBookings...)
		snap.ResourceBookings = append(snap.ResourceBookings, day.ResourceBookings...)
		snap.Blocks = append(snap.Blocks, blocks[i]...)
	}
	snap.StaffBookings = append(snap.StaffBookings, lessons...)

	if snap.StaffStudios == nil {
		snap.StaffStudios = map[int64][]int64{}
	}
	if snap.ProgramDailyCounts == nil {
		snap.ProgramDailyCounts = map[string]int{}
	}

	s.logger.Info("assemble: loaded snapshot room=%d program=%d %s..%s: %d shifts, %d staff bookings, %d blocks",
		roomID, programID, dateFrom, dateTo, len(snap.Shifts), len(snap.StaffBookings), len(snap.Blocks))

	return snap, nil
}

func (s *Service) observe(result string) {
	if s.metrics != nil {
		s.metrics.ObserveSnapshotCache(result)
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// datesBetween даты YYYY-MM-DD от from до to включительно
func datesBetween(from, to time.Time) []string {
	dates := make([]string, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(domain.DateFormat))
	}
	return dates
}
