package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/notify"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/logger"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/ptr"
)

type fakeRepo struct {
	items   []*domain.Appointment
	created []*domain.Appointment
}

func (f *fakeRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	cp := *a
	f.created = append(f.created, &cp)
	f.items = append(f.items, &cp)
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

type fakePolicies struct {
	policy domain.SchedulingPolicy
	err    error
}

func (f *fakePolicies) GetEffectivePolicy(_ context.Context, _ string, _ *string) (domain.SchedulingPolicy, error) {
	return f.policy, f.err
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakePublisher struct {
	events []domain.AppointmentEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, event domain.AppointmentEvent) error {
	f.events = append(f.events, event)
	return f.err
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

func (f *fakeRecorder) RecordSchedulingDecision(operation, outcome string) {
	f.outcomes = append(f.outcomes, operation+":"+outcome)
}

type fixture struct {
	repo      *fakeRepo
	policies  *fakePolicies
	publisher *fakePublisher
	notifier  *fakeNotifier
	recorder  *fakeRecorder
	uc        *UseCase
}

func newFixture(existing ...*domain.Appointment) *fixture {
	f := &fixture{
		repo:      &fakeRepo{items: existing},
		policies:  &fakePolicies{policy: domain.DefaultSchedulingPolicy()},
		publisher: &fakePublisher{},
		notifier:  &fakeNotifier{},
		recorder:  &fakeRecorder{},
	}
	f.uc = NewUseCase(f.repo, f.policies, &fakeTx{}, f.publisher, f.notifier, f.recorder, time.UTC, logger.NewNop())
	f.uc.now = func() time.Time { return time.Date(2024, 3, 19, 9, 0, 0, 0, time.UTC) }
	ids := 0
	f.uc.newID = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	return f
}

func existingAppointment(id string, startHour, endHour int) *domain.Appointment {
	return &domain.Appointment{
		ID:         id,
		SalonID:    "salon-1",
		ResourceID: "staff1",
		Start:      time.Date(2024, 3, 20, startHour, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 3, 20, endHour, 0, 0, 0, time.UTC),
		Status:     domain.StatusConfirmed,
	}
}

func request(startTime string, duration int) *Request {
	return &Request{
		SalonID:         "salon-1",
		ResourceID:      "staff1",
		UserID:          "user-1",
		ServiceName:     ptr.Ptr("Taglio"),
		Date:            "2024-03-20",
		StartTime:       startTime,
		DurationMinutes: duration,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(existingAppointment("a1", 10, 11))

	resp, err := f.uc.Execute(context.Background(), request("11:00", 60))
	require.NoError(t, err)

	assert.Equal(t, "id-1", resp.Appointment.ID)
	assert.Equal(t, time.Date(2024, 3, 20, 11, 0, 0, 0, time.UTC), resp.Appointment.Start)
	assert.Equal(t, time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC), resp.Appointment.End)
	assert.Equal(t, domain.StatusConfirmed, resp.Appointment.Status)
	assert.Equal(t, scheduling.CreatedNotice(), resp.Notice)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.EventAppointmentCreated, f.publisher.events[0].Type)
	assert.Equal(t, "id-1", f.publisher.events[0].AppointmentID)

	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, "id-1", f.notifier.messages[0].AppointmentID)
	assert.Equal(t, domain.NoticeSuccess, f.notifier.messages[0].Notice.Variant)
	assert.Equal(t, []string{"create:accepted"}, f.recorder.outcomes)
}

func TestExecute_Conflict(t *testing.T) {
	f := newFixture(existingAppointment("a1", 10, 11))

	_, err := f.uc.Execute(context.Background(), request("10:30", 30))
	require.ErrorIs(t, err, ErrSlotConflict)

	rej, ok := scheduling.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, scheduling.ConflictNotice(), rej.Notice)
	assert.Equal(t, "a1", rej.Conflict.ID)

	assert.Empty(t, f.repo.created)
	assert.Empty(t, f.publisher.events)
	require.Len(t, f.notifier.messages, 1)
	assert.True(t, f.notifier.messages[0].Notice.IsError())
	assert.Equal(t, []string{"create:conflict"}, f.recorder.outcomes)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "ends after closing", req: request("19:30", 60), wantErr: ErrOutOfBusinessHours},
		{name: "starts before opening", req: request("07:45", 30), wantErr: ErrOutOfBusinessHours},
		{name: "duration not an option", req: request("10:00", 50), wantErr: ErrInvalidDuration},
		{name: "malformed time", req: request("25:00", 30), wantErr: ErrInvalidTimeInput},
		{name: "zero duration", req: request("10:00", 0), wantErr: ErrInvalidTimeInput},
		{
			name: "malformed date",
			req: func() *Request {
				r := request("10:00", 30)
				r.Date = "20-03-2024"
				return r
			}(),
			wantErr: ErrInvalidTimeInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)

			_, ok := scheduling.AsRejection(err)
			assert.True(t, ok)
			assert.Empty(t, f.repo.created)
			assert.Len(t, f.notifier.messages, 1)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	req := request("10:00", 30)
	req.ResourceID = ""
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request("10:00", 30)
	long := make([]byte, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'x'
	}
	req.Notes = ptr.Ptr(string(long))
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, f.notifier.messages)
}

func TestExecute_OtherResourceDoesNotConflict(t *testing.T) {
	other := existingAppointment("a1", 10, 11)
	other.ResourceID = "staff2"
	f := newFixture(other)

	_, err := f.uc.Execute(context.Background(), request("10:00", 60))
	assert.NoError(t, err)
}

func TestExecute_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), request("10:00", 30))
	require.NoError(t, err)
	assert.NotNil(t, resp.Appointment)
}

func TestExecute_PolicyError(t *testing.T) {
	f := newFixture()
	f.policies.err = errors.New("db down")

	_, err := f.uc.Execute(context.Background(), request("10:00", 30))
	assert.ErrorIs(t, err, ErrInternal)
}
