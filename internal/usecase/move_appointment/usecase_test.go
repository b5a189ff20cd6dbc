package move_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/notify"
	appointmentRepo "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/storage/appointment"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/logger"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/ptr"
)

type fakeRepo struct {
	items   map[string]*domain.Appointment
	updates int
	getErr  error
}

func (f *fakeRepo) GetByID(_ context.Context, salonID, id string) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.items[id]
	if !ok || a.SalonID != salonID {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) ListByResourceInRange(_ context.Context, salonID, resourceID string, _, _ time.Time) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.items {
		if a.SalonID == salonID && a.ResourceID == resourceID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateSchedule(_ context.Context, _, id, resourceID string, start, end time.Time) (*domain.Appointment, error) {
	f.updates++
	a := f.items[id]
	a.ResourceID = resourceID
	a.Start = start
	a.End = end
	cp := *a
	return &cp, nil
}

type fakePolicies struct{}

func (fakePolicies) GetEffectivePolicy(_ context.Context, _ string, _ *string) (domain.SchedulingPolicy, error) {
	return domain.DefaultSchedulingPolicy(), nil
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	events []domain.AppointmentEvent
}

func (f *fakePublisher) Publish(_ context.Context, event domain.AppointmentEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fakeNotifier struct {
	messages []notify.Message
}

func (f *fakeNotifier) Notify(_ context.Context, msg notify.Message) error {
	f.messages = append(f.messages, msg)
	return nil
}

type fakeRecorder struct {
	outcomes []string
}

func (f *fakeRecorder) RecordSchedulingDecision(_, outcome string) {
	f.outcomes = append(f.outcomes, outcome)
}

type fixture struct {
	repo      *fakeRepo
	publisher *fakePublisher
	notifier  *fakeNotifier
	recorder  *fakeRecorder
	uc        *UseCase
}

func at(h, m int) time.Time {
	return time.Date(2024, 3, 20, h, m, 0, 0, time.UTC)
}

func appointment(id, resourceID string, start, end time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:         id,
		SalonID:    "salon-1",
		ResourceID: resourceID,
		Start:      start,
		End:        end,
		Status:     domain.StatusConfirmed,
	}
}

func newFixture(items ...*domain.Appointment) *fixture {
	f := &fixture{
		repo:      &fakeRepo{items: map[string]*domain.Appointment{}},
		publisher: &fakePublisher{},
		notifier:  &fakeNotifier{},
		recorder:  &fakeRecorder{},
	}
	for _, a := range items {
		f.repo.items[a.ID] = a
	}
	f.uc = NewUseCase(f.repo, fakePolicies{}, fakeTx{}, f.publisher, f.notifier, f.recorder, time.UTC, logger.NewNop())
	return f
}

func moveRequest(id string, start, end time.Time) *Request {
	return &Request{SalonID: "salon-1", AppointmentID: id, UserID: "user-1", Start: start, End: end}
}

func TestExecute_ConflictIsReverted(t *testing.T) {
	f := newFixture(
		appointment("a1", "staff1", at(10, 0), at(11, 0)),
		appointment("a2", "staff1", at(12, 0), at(13, 0)),
	)

	resp, err := f.uc.Execute(context.Background(), moveRequest("a2", at(10, 30), at(11, 30)))
	require.NoError(t, err)

	assert.False(t, resp.Accepted)
	assert.ErrorIs(t, resp.Reason, scheduling.ErrSlotConflict)
	assert.Equal(t, "Conflitto di appuntamenti", resp.Notice.Title)
	assert.Equal(t, "a1", resp.Conflict.ID)
	assert.Equal(t, at(12, 0), resp.Appointment.Start, "original times are returned")

	assert.Zero(t, f.repo.updates)
	assert.Empty(t, f.publisher.events)
	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, resp.Notice, f.notifier.messages[0].Notice)
	assert.Equal(t, []string{scheduling.OutcomeConflict}, f.recorder.outcomes)
}

func TestExecute_Accepted(t *testing.T) {
	f := newFixture(
		appointment("a1", "staff1", at(10, 0), at(11, 0)),
		appointment("a2", "staff1", at(12, 0), at(13, 0)),
	)

	resp, err := f.uc.Execute(context.Background(), moveRequest("a2", at(11, 0), at(12, 0)))
	require.NoError(t, err)

	assert.True(t, resp.Accepted)
	assert.NoError(t, resp.Reason)
	assert.Equal(t, scheduling.MovedNotice(), resp.Notice)
	assert.Equal(t, at(11, 0), resp.Appointment.Start)
	assert.Equal(t, 1, f.repo.updates)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.EventAppointmentRescheduled, f.publisher.events[0].Type)
	assert.Equal(t, []string{scheduling.OutcomeAccepted}, f.recorder.outcomes)
}

func TestExecute_ToAnotherResource(t *testing.T) {
	f := newFixture(
		appointment("a1", "staff1", at(10, 0), at(11, 0)),
		appointment("a2", "staff2", at(10, 0), at(11, 0)),
	)

	req := moveRequest("a1", at(10, 0), at(11, 0))
	req.ResourceID = ptr.Ptr("staff2")
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Accepted)
	assert.ErrorIs(t, resp.Reason, scheduling.ErrSlotConflict)

	req.ResourceID = ptr.Ptr("staff3")
	resp, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.Equal(t, "staff3", resp.Appointment.ResourceID)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	f := newFixture(appointment("a1", "staff1", at(10, 0), at(11, 0)))

	resp, err := f.uc.Execute(context.Background(), moveRequest("a1", at(19, 30), at(20, 30)))
	require.NoError(t, err)
	assert.False(t, resp.Accepted)
	assert.ErrorIs(t, resp.Reason, scheduling.ErrOutOfBusinessHours)
	assert.Equal(t, "Validation failed - appointments must be within working hours (8:00-20:00)", resp.Notice.Description)
	assert.Zero(t, f.repo.updates)
}

func TestExecute_InvalidInterval(t *testing.T) {
	f := newFixture(appointment("a1", "staff1", at(10, 0), at(11, 0)))

	resp, err := f.uc.Execute(context.Background(), moveRequest("a1", at(11, 0), at(10, 0)))
	require.NoError(t, err)
	assert.False(t, resp.Accepted)
	assert.ErrorIs(t, resp.Reason, scheduling.ErrInvalidInterval)
}

func TestExecute_Errors(t *testing.T) {
	done := appointment("a3", "staff1", at(15, 0), at(16, 0))
	done.Status = domain.StatusCompleted

	f := newFixture(appointment("a1", "staff1", at(10, 0), at(11, 0)), done)

	_, err := f.uc.Execute(context.Background(), moveRequest("missing", at(12, 0), at(13, 0)))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = f.uc.Execute(context.Background(), moveRequest("a3", at(12, 0), at(13, 0)))
	assert.ErrorIs(t, err, ErrCannotReschedule)

	_, err = f.uc.Execute(context.Background(), moveRequest("a1", time.Time{}, at(13, 0)))
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.repo.getErr = errors.New("connection reset")
	_, err = f.uc.Execute(context.Background(), moveRequest("a1", at(12, 0), at(13, 0)))
	assert.ErrorIs(t, err, ErrInternal)

	assert.Empty(t, f.notifier.messages)
	assert.Empty(t, f.recorder.outcomes)
}
