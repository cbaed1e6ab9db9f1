package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Options studio-wide evaluation settings
type Options struct {
	MinLead    time.Duration // минимальное время до начала слота
	MaxHorizon time.Duration // максимальная дальность бронирования, 0 = без ограничения

	// SkipResourceCheck отключает проверку оборудования на пути бронирования
	SkipResourceCheck bool
}

// TermCandidates resource items that satisfy one term of the slot
type TermCandidates struct {
	Term        domain.Term
	Window      domain.Interval
	ResourceIDs []int64
}

// Result outcome of one slot evaluation
// Staff and Terms are filled only as far as the pipeline got
type Result struct {
	Reason Reason

	// Staff eligible staff in snapshot order, set once the staff stage passed
	Staff []int64

	// Terms per-term candidates, set once the resource stage bound resources
	Terms []TermCandidates
}

// stage one step of the ordered pipeline; it declares every reason it can report
type stage struct {
	name    string
	reasons []Reason
	run     func(e *Evaluator, ev *evaluation) (Reason, error)
}

// pipeline порядок стадий определяет порядок приоритета причин
var pipeline = []stage{
	{
		name:    "temporal",
		reasons: []Reason{ReasonTooSoon, ReasonTooFar, ReasonDeadlinePassed},
		run:     (*Evaluator).checkTemporal,
	},
	{
		name:    "daily-cap",
		reasons: []Reason{ReasonDailyLimitReached},
		run:     (*Evaluator).checkDailyCap,
	},
	{
		name:    "business-hours",
		reasons: []Reason{ReasonHoliday, ReasonOutsideHours},
		run:     (*Evaluator).checkBusinessHours,
	},
	{
		name:    "staff",
		reasons: []Reason{ReasonOutsideHours, ReasonNoSelectableStaff, ReasonIntervalBlocked, ReasonFullyBooked},
		run:     (*Evaluator).checkStaff,
	},
	{
		name:    "resource",
		reasons: []Reason{ReasonNoAvailableResource},
		run:     (*Evaluator).checkResources,
	},
}

// evaluation per-slot working state
type evaluation struct {
	now      time.Time
	snap     *domain.Snapshot
	program  *domain.Program
	slot     domain.Slot
	interval domain.Interval
	result   Result
}

// Evaluator turns (snapshot, program, slot) into exactly one Reason
// It performs no I/O; the same inputs and clock always give the same Result
type Evaluator struct {
	opts         Options
	timeProvider TimeProvider
}

// NewEvaluator создает новый экземпляр Evaluator
func NewEvaluator(opts Options, timeProvider TimeProvider) *Evaluator {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Evaluator{
		opts:         opts,
		timeProvider: timeProvider,
	}
}

// Options returns the settings the evaluator was built with
func (e *Evaluator) Options() Options {
	return e.opts
}

// WithOptions copy of the evaluator with different settings and the same clock
func (e *Evaluator) WithOptions(opts Options) *Evaluator {
	return &Evaluator{opts: opts, timeProvider: e.timeProvider}
}

// Now current time according to the evaluator clock
func (e *Evaluator) Now() time.Time {
	return e.timeProvider.Now()
}

// Evaluate evaluates the slot against the current time
func (e *Evaluator) Evaluate(snap *domain.Snapshot, program *domain.Program, slot domain.Slot) (Result, error) {
	return e.EvaluateAt(e.timeProvider.Now(), snap, program, slot)
}

// EvaluateAt evaluates the slot as of now
// A malformed input error concerns this slot only
func (e *Evaluator) EvaluateAt(now time.Time, snap *domain.Snapshot, program *domain.Program, slot domain.Slot) (Result, error) {
	if snap == nil || program == nil {
		return Result{}, malformed("snapshot and program are required")
	}
	if err := program.Validate(); err != nil {
		return Result{}, malformed("%v", err)
	}
	if slot.Start.IsZero() || slot.Duration <= 0 {
		return Result{}, malformed("invalid slot start=%s duration=%s", slot.Start, slot.Duration)
	}

	ev := &evaluation{
		now:      now,
		snap:     snap,
		program:  program,
		slot:     slot,
		interval: slot.Interval(),
	}

	for _, st := range pipeline {
		reason, err := st.run(e, ev)
		if err != nil {
			return Result{}, err
		}
		if !reason.IsAvailable() {
			ev.result.Reason = reason
			return ev.result, nil
		}
	}

	ev.result.Reason = ReasonAvailable
	return ev.result, nil
}

// checkTemporal окно бронирования относительно текущего времени
func (e *Evaluator) checkTemporal(ev *evaluation) (Reason, error) {
	start := ev.slot.Start

	if start.Before(ev.now.Add(e.opts.MinLead)) {
		return ReasonTooSoon, nil
	}
	if e.opts.MaxHorizon > 0 && start.After(ev.now.Add(e.opts.MaxHorizon)) {
		return ReasonTooFar, nil
	}

	deadline := start.Add(-time.Duration(ev.program.BookingDeadlineMinutes) * time.Minute)
	if ev.now.After(deadline) {
		return ReasonDeadlinePassed, nil
	}

	return ReasonAvailable, nil
}

// checkDailyCap лимит бронирований программы в день
func (e *Evaluator) checkDailyCap(ev *evaluation) (Reason, error) {
	if !ev.program.HasDailyCap() {
		return ReasonAvailable, nil
	}
	if ev.snap.ProgramCountOn(ev.slot.DateKey()) >= *ev.program.DailyCap {
		return ReasonDailyLimitReached, nil
	}
	return ReasonAvailable, nil
}

// checkBusinessHours выходной день и часы работы студии
func (e *Evaluator) checkBusinessHours(ev *evaluation) (Reason, error) {
	bh, ok := ev.snap.BusinessHourOn(ev.slot.DateKey())
	if !ok {
		return ReasonOutsideHours, nil
	}
	if bh.IsHoliday {
		return ReasonHoliday, nil
	}
	if err := bh.Open.Validate(); err != nil {
		return "", malformed("business hours %s: %v", bh.Date, err)
	}
	if !bh.Open.Contains(ev.interval) {
		return ReasonOutsideHours, nil
	}
	return ReasonAvailable, nil
}

// checkStaff смены, привязка к студии, правило выбора и занятость персонала
func (e *Evaluator) checkStaff(ev *evaluation) (Reason, error) {
	staff, reason, err := eligibleStaff(ev.snap, ev.program, ev.interval)
	if err != nil {
		return "", err
	}
	if !reason.IsAvailable() {
		return reason, nil
	}
	ev.result.Staff = staff
	return ReasonAvailable, nil
}

// checkResources привязка оборудования по термам
func (e *Evaluator) checkResources(ev *evaluation) (Reason, error) {
	if e.opts.SkipResourceCheck {
		return ReasonAvailable, nil
	}

	binding, err := ev.program.ResourceRule.RequiresBinding()
	if err != nil {
		return "", malformed("%v", err)
	}
	if !binding {
		return ReasonAvailable, nil
	}

	terms, reason, err := satisfyTerms(ev.snap, ev.program, ev.slot)
	if err != nil {
		return "", err
	}
	if !reason.IsAvailable() {
		return reason, nil
	}
	ev.result.Terms = terms
	return ReasonAvailable, nil
}
