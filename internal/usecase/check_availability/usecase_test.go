package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/logger"
)

type fakeRepo struct {
	items []*domain.Appointment
	err   error
}

func (f *fakeRepo) ListByResourceInRange(_ context.Context, _, _ string, _, _ time.Time) ([]*domain.Appointment, error) {
	return f.items, f.err
}

type fakePolicies struct {
	policy domain.SchedulingPolicy
}

func (f fakePolicies) GetEffectivePolicy(_ context.Context, _ string, _ *string) (domain.SchedulingPolicy, error) {
	return f.policy, nil
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeRecorder struct {
	outcomes []string
}

func (f *fakeRecorder) RecordSchedulingDecision(_, outcome string) {
	f.outcomes = append(f.outcomes, outcome)
}

func at(h, m int) time.Time {
	return time.Date(2024, 3, 20, h, m, 0, 0, time.UTC)
}

func appointment(id string, status domain.AppointmentStatus, start, end time.Time) *domain.Appointment {
	return &domain.Appointment{ID: id, SalonID: "salon-1", ResourceID: "staff1", Start: start, End: end, Status: status}
}

func newUseCase(policy domain.SchedulingPolicy, items ...*domain.Appointment) (*UseCase, *fakeRecorder) {
	recorder := &fakeRecorder{}
	return NewUseCase(&fakeRepo{items: items}, fakePolicies{policy: policy}, &fakeTx{}, recorder, time.UTC, logger.NewNop()), recorder
}

func request(start, end time.Time) *Request {
	return &Request{SalonID: "salon-1", ResourceID: "staff1", Start: start, End: end}
}

func TestExecute(t *testing.T) {
	existing := appointment("a1", domain.StatusConfirmed, at(10, 0), at(11, 0))

	tests := []struct {
		name          string
		req           *Request
		wantAvailable bool
		wantHours     bool
		wantConflict  string
		wantOutcome   string
	}{
		{name: "overlap", req: request(at(10, 30), at(11, 30)), wantHours: true, wantConflict: "a1", wantOutcome: "conflict"},
		{name: "touching end", req: request(at(11, 0), at(12, 0)), wantAvailable: true, wantHours: true, wantOutcome: "accepted"},
		{name: "excluded self", req: func() *Request {
			r := request(at(10, 30), at(11, 30))
			r.ExcludeID = "a1"
			return r
		}(), wantAvailable: true, wantHours: true, wantOutcome: "accepted"},
		{name: "free but after closing", req: request(at(19, 30), at(20, 30)), wantAvailable: true, wantOutcome: "out_of_business_hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, recorder := newUseCase(domain.DefaultSchedulingPolicy(), existing)

			resp, err := uc.Execute(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, resp.Available)
			assert.Equal(t, tt.wantHours, resp.WithinBusinessHours)
			if tt.wantConflict != "" {
				require.NotNil(t, resp.ConflictID)
				assert.Equal(t, tt.wantConflict, *resp.ConflictID)
			} else {
				assert.Nil(t, resp.ConflictID)
			}
			assert.Equal(t, []string{tt.wantOutcome}, recorder.outcomes)
		})
	}
}

func TestExecute_CancelledHandling(t *testing.T) {
	cancelled := appointment("c1", domain.StatusCancelled, at(10, 0), at(11, 0))

	uc, _ := newUseCase(domain.DefaultSchedulingPolicy(), cancelled)
	resp, err := uc.Execute(context.Background(), request(at(10, 0), at(11, 0)))
	require.NoError(t, err)
	assert.False(t, resp.Available, "cancelled appointments block by default")

	policy := domain.DefaultSchedulingPolicy()
	policy.IgnoreCancelled = true
	uc, _ = newUseCase(policy, cancelled)
	resp, err = uc.Execute(context.Background(), request(at(10, 0), at(11, 0)))
	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_Errors(t *testing.T) {
	uc, _ := newUseCase(domain.DefaultSchedulingPolicy())

	_, err := uc.Execute(context.Background(), request(at(11, 0), at(10, 0)))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = uc.Execute(context.Background(), &Request{SalonID: "salon-1", Start: at(10, 0), End: at(11, 0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repoErr := errors.New("timeout")
	tx := &fakeTx{}
	failing := NewUseCase(&fakeRepo{err: repoErr}, fakePolicies{policy: domain.DefaultSchedulingPolicy()}, tx, &fakeRecorder{}, time.UTC, logger.NewNop())
	_, err = failing.Execute(context.Background(), request(at(10, 0), at(11, 0)))
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, repoErr)
	assert.Equal(t, 1, tx.calls)
}
