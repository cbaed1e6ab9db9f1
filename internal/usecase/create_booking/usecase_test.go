package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/hacomono"
	"github.com/m04kA/SMC-ReservationService/internal/service/snapshot"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

func at(date, hhmm string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeProvider struct {
	snap    *domain.Snapshot
	program *domain.Program
	lastReq snapshot.Request
}

func (f *fakeProvider) Load(_ context.Context, req snapshot.Request) (*domain.Snapshot, error) {
	f.lastReq = req
	return f.snap, nil
}

func (f *fakeProvider) Program(context.Context, int64) (*domain.Program, error) {
	return f.program, nil
}

type fakeClient struct {
	memberErr      error
	reservationErr error
	members        []hacomono.GuestMember
	reservations   []hacomono.ChoiceReservationRequest
}

func (f *fakeClient) CreateMember(_ context.Context, guest hacomono.GuestMember) (int64, error) {
	f.members = append(f.members, guest)
	if f.memberErr != nil {
		return 0, f.memberErr
	}
	return 55, nil
}

func (f *fakeClient) CreateChoiceReservation(_ context.Context, req hacomono.ChoiceReservationRequest) (*hacomono.Reservation, error) {
	f.reservations = append(f.reservations, req)
	if f.reservationErr != nil {
		return nil, f.reservationErr
	}
	return &hacomono.Reservation{ID: 1001, MemberID: req.MemberID}, nil
}

func (f *fakeClient) FormatStartAt(t time.Time) string {
	return t.Format(domain.UpstreamDateTimeFormat)
}

func (f *fakeClient) Location() *time.Location {
	return time.UTC
}

var errSlotTaken = errors.New("slot taken upstream")

// fakeClassifier считает отказом платформы только errSlotTaken
type fakeClassifier struct{}

func (fakeClassifier) Classify(err error) (string, string, bool) {
	if errors.Is(err, errSlotTaken) {
		return "no_staff_available", "担当者の予定が埋まっています", true
	}
	return "", "", false
}

type fakeRepo struct {
	err      error
	attempts []domain.ReservationAttempt
}

func (f *fakeRepo) Create(_ context.Context, attempt *domain.ReservationAttempt) (*domain.ReservationAttempt, error) {
	f.attempts = append(f.attempts, *attempt)
	if f.err != nil {
		return nil, f.err
	}
	saved := *attempt
	saved.ID = fmt.Sprintf("attempt-%d", len(f.attempts))
	return &saved, nil
}

type fakeInvalidator struct {
	rooms []int64
}

func (f *fakeInvalidator) InvalidateRoom(_ context.Context, roomID int64) (int, error) {
	f.rooms = append(f.rooms, roomID)
	return 1, nil
}

type bookingMetrics struct {
	slots    []string
	attempts []string
}

func (m *bookingMetrics) ObserveSlotEvaluation(path, reason string) {
	m.slots = append(m.slots, path+"/"+reason)
}

func (m *bookingMetrics) ObserveBookingAttempt(outcome, kind string) {
	m.attempts = append(m.attempts, outcome+"/"+kind)
}

type fixture struct {
	uc          *UseCase
	provider    *fakeProvider
	client      *fakeClient
	repo        *fakeRepo
	invalidator *fakeInvalidator
	metrics     *bookingMetrics
}

func newFixture(opts Options) *fixture {
	now := at("2026-10-19", "08:00")
	evaluator := availability.NewEvaluator(availability.Options{MinLead: time.Hour}, fixedClock{now: now})

	f := &fixture{
		provider: &fakeProvider{
			snap: &domain.Snapshot{
				Room: domain.Room{ID: 7, StudioID: 3, GranularityMinutes: 30},
				BusinessHours: []domain.BusinessHour{
					{Date: "2026-10-20", Open: domain.Interval{Start: at("2026-10-20", "10:00"), End: at("2026-10-20", "20:00")}},
				},
				Shifts: []domain.StaffShift{
					{StaffID: 11, Interval: domain.Interval{Start: at("2026-10-20", "10:00"), End: at("2026-10-20", "20:00")}},
					{StaffID: 12, Interval: domain.Interval{Start: at("2026-10-20", "10:00"), End: at("2026-10-20", "20:00")}},
				},
				Resources: []domain.ResourceRecord{
					{ID: 21, StudioID: 3, Capacity: 1},
				},
				StaffStudios:       map[int64][]int64{},
				ProgramDailyCounts: map[string]int{},
			},
			program: &domain.Program{
				ID:                  9,
				ServiceMinutes:      60,
				MaxExtensionMinutes: intPtr(30),
				StaffRule:           domain.StaffRule{Kind: domain.SelectionAll},
				ResourceRule:        domain.ResourceRule{Kind: domain.SelectionAll},
			},
		},
		client:      &fakeClient{},
		repo:        &fakeRepo{},
		invalidator: &fakeInvalidator{},
		metrics:     &bookingMetrics{},
	}

	f.uc = NewUseCase(f.provider, availability.NewResolver(evaluator), f.client, fakeClassifier{},
		f.repo, f.invalidator, f.metrics, opts, logger.NewNop())
	f.uc.timeProvider = fixedClock{now: now}
	return f
}

func intPtr(v int) *int { return &v }

func validRequest() *Request {
	return &Request{
		RoomID:    7,
		ProgramID: 9,
		StartAt:   at("2026-10-20", "10:00"),
		Guest: Guest{
			Name:  "山田 花子",
			Email: "hanako@example.com",
			Phone: "09000000000",
			Note:  "初めてです",
		},
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(Options{TicketID: 3, FreshSnapshot: true})

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1001), resp.ReservationID)
	assert.Equal(t, int64(55), resp.MemberID)
	assert.Equal(t, int64(11), resp.StaffID)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, SuccessMessage, resp.Message)
	assert.Equal(t, "attempt-1", resp.AttemptID)

	assert.True(t, f.provider.lastReq.Fresh)

	require.Len(t, f.client.members, 1)
	assert.True(t, f.client.members[0].IsGuest)
	assert.Equal(t, int64(3), f.client.members[0].StudioID)
	assert.Equal(t, "Web予約ゲスト: 初めてです", f.client.members[0].Note)

	require.Len(t, f.client.reservations, 1)
	res := f.client.reservations[0]
	assert.Equal(t, []int64{11}, res.InstructorIDs)
	assert.Equal(t, "2026-10-20 10:00:00.000", res.StartAt)
	assert.Equal(t, int64(3), res.TicketID)
	assert.Nil(t, res.ResourceIDSet)

	require.Len(t, f.repo.attempts, 1)
	assert.Equal(t, domain.OutcomeCreated, f.repo.attempts[0].Outcome)
	assert.Equal(t, int64(1001), *f.repo.attempts[0].ReservationID)

	assert.Equal(t, []int64{7}, f.invalidator.rooms)
	assert.Equal(t, []string{"booking/available"}, f.metrics.slots)
	assert.Equal(t, []string{"created/"}, f.metrics.attempts)
}

func TestExecute_BindsResourcesPerTerm(t *testing.T) {
	f := newFixture(Options{})
	f.provider.program.ResourceRule = domain.ResourceRule{
		Kind: domain.SelectionSelected,
		Terms: []domain.Term{
			{Name: "shampoo", StartMinute: 0, EndMinute: 30, ResourceIDs: []int64{21}},
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, f.client.reservations, 1)
	assert.Equal(t, []hacomono.ResourceBinding{{ResourceID: 21, StartMinutes: 0, EndMinutes: 30}},
		f.client.reservations[0].ResourceIDSet)
	assert.Equal(t, []int64{21}, f.repo.attempts[0].ResourceIDs)
}

func TestExecute_LocalUnavailability(t *testing.T) {
	f := newFixture(Options{})
	req := validRequest()
	req.StartAt = at("2026-10-19", "08:30")

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrBookingRejected)

	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, availability.KindOutOfRangeDatetime, bookingErr.Kind)
	assert.Equal(t, availability.ReasonTooSoon, bookingErr.Reason)

	assert.Empty(t, f.client.members)
	assert.Empty(t, f.client.reservations)
	require.Len(t, f.repo.attempts, 1)
	assert.Equal(t, domain.OutcomeUnavailable, f.repo.attempts[0].Outcome)
	assert.Equal(t, "too-soon", *f.repo.attempts[0].Reason)
	assert.Empty(t, f.invalidator.rooms)
	assert.Equal(t, []string{"booking/too-soon"}, f.metrics.slots)
}

func TestExecute_UpstreamRejectionIsNotRetried(t *testing.T) {
	f := newFixture(Options{})
	f.client.reservationErr = fmt.Errorf("reserve: %w", errSlotTaken)

	_, err := f.uc.Execute(context.Background(), validRequest())

	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, availability.KindNoStaffAvailable, bookingErr.Kind)
	assert.Empty(t, bookingErr.Reason)
	assert.Equal(t, "担当者の予定が埋まっています", bookingErr.Message)

	// второй сотрудник свободен, но повторной попытки нет
	assert.Len(t, f.client.reservations, 1)

	require.Len(t, f.repo.attempts, 1)
	assert.Equal(t, domain.OutcomeRejected, f.repo.attempts[0].Outcome)
	assert.Equal(t, "担当者の予定が埋まっています", *f.repo.attempts[0].Message)
	assert.Equal(t, []string{"rejected/no_staff_available"}, f.metrics.attempts)
}

func TestExecute_UpstreamUnavailable(t *testing.T) {
	f := newFixture(Options{})
	f.client.memberErr = fmt.Errorf("%w: connection refused", hacomono.ErrUnavailable)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrUpstreamUnavailable)

	assert.Empty(t, f.client.reservations)
	require.Len(t, f.repo.attempts, 1)
	assert.Equal(t, domain.OutcomeFailed, f.repo.attempts[0].Outcome)
}

func TestExecute_JournalFailureKeepsReservation(t *testing.T) {
	f := newFixture(Options{})
	f.repo.err = errors.New("db down")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1001), resp.ReservationID)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{"missing room", func(r *Request) { r.RoomID = 0 }},
		{"missing start", func(r *Request) { r.StartAt = time.Time{} }},
		{"negative extension", func(r *Request) { r.ExtensionMinutes = -10 }},
		{"extension over maximum", func(r *Request) { r.ExtensionMinutes = 45 }},
		{"missing name", func(r *Request) { r.Guest.Name = " " }},
		{"bad email", func(r *Request) { r.Guest.Email = "not-an-email" }},
		{"missing phone", func(r *Request) { r.Guest.Phone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{})
			req := validRequest()
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.client.members)
		})
	}
}

func TestExecute_ExtensionWithinMaximum(t *testing.T) {
	f := newFixture(Options{})
	req := validRequest()
	req.ExtensionMinutes = 30

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, 30, f.client.reservations[0].ExtensionMinutes)
}
