package export_calendar

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/logger"
)

type fakeRepo struct {
	items      []*domain.Appointment
	lastFilter domain.AppointmentsFilter
}

func (f *fakeRepo) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.items, nil
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func TestExecute(t *testing.T) {
	repo := &fakeRepo{items: []*domain.Appointment{{
		ID:         "a1",
		SalonID:    "salon-1",
		ResourceID: "staff1",
		Start:      time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 3, 20, 11, 0, 0, 0, time.UTC),
		Status:     domain.StatusConfirmed,
	}}}
	tx := &fakeTx{}
	uc := NewUseCase(repo, tx, "gurfa.test", logger.NewNop())

	from := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		SalonID:    "salon-1",
		ResourceID: "staff1",
		From:       from,
		To:         from.AddDate(0, 0, 7),
	})
	require.NoError(t, err)

	assert.Equal(t, "staff1-2024-03-18.ics", resp.FileName)
	assert.Equal(t, 1, resp.Count)
	assert.True(t, strings.HasPrefix(string(resp.Content), "BEGIN:VCALENDAR"))
	assert.Contains(t, string(resp.Content), "a1@gurfa.test")

	require.NotNil(t, repo.lastFilter.ResourceID)
	assert.Equal(t, "staff1", *repo.lastFilter.ResourceID)
	assert.False(t, repo.lastFilter.IncludeCancelled)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_InvalidPeriod(t *testing.T) {
	tx := &fakeTx{}
	uc := NewUseCase(&fakeRepo{}, tx, "gurfa.test", logger.NewNop())
	from := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{SalonID: "s", ResourceID: "r", From: from, To: from})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = uc.Execute(context.Background(), &Request{SalonID: "s", ResourceID: "r", From: from, To: from.AddDate(0, 6, 0)})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = uc.Execute(context.Background(), &Request{SalonID: "s", From: from, To: from.AddDate(0, 0, 1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, tx.calls)
}
