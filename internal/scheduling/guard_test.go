package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

type recordingSink struct {
	notices []domain.Notice
}

func (s *recordingSink) Notify(n domain.Notice) {
	s.notices = append(s.notices, n)
}

func interaction(a *domain.Appointment, start, end time.Time, reverts *int) *Interaction {
	return &Interaction{
		Appointment:   a,
		ProposedStart: start,
		ProposedEnd:   end,
		Revert:        func() { *reverts++ },
	}
}

func snapshot(list []*domain.Appointment) []domain.Appointment {
	out := make([]domain.Appointment, 0, len(list))
	for _, a := range list {
		out = append(out, *a)
	}
	return out
}

func TestGuard_EndDrag_Conflict(t *testing.T) {
	other := newAppointment("a1", staff1, at(10, 0), at(11, 0))
	moved := newAppointment("a2", staff1, at(14, 0), at(15, 0))
	existing := []*domain.Appointment{other, moved}
	before := snapshot(existing)

	sink := &recordingSink{}
	guard := NewGuard(newTestValidator(), sink)

	var reverts int
	ev := interaction(moved, at(10, 30), at(11, 30), &reverts)
	require.NoError(t, guard.BeginDrag(ev))
	assert.True(t, guard.IsDragging())

	d := guard.EndDrag(ev, existing)

	assert.False(t, d.Accepted)
	assert.True(t, d.Reverted())
	assert.ErrorIs(t, d.Err, ErrSlotConflict)
	assert.Equal(t, "Conflitto di appuntamenti", d.Notice.Title)
	assert.Equal(t, "An appointment already exists in this time slot.", d.Notice.Description)
	assert.Equal(t, domain.NoticeDestructive, d.Notice.Variant)
	if assert.NotNil(t, d.Conflict) {
		assert.Equal(t, "a1", d.Conflict.ID)
	}

	assert.Equal(t, 1, reverts)
	assert.False(t, guard.IsDragging())
	assert.Equal(t, StateIdle, guard.State())
	assert.Equal(t, before, snapshot(existing), "existing appointments must not be mutated")
	assert.Equal(t, []domain.Notice{d.Notice}, sink.notices)
}

func TestGuard_EndDrag_Accepted(t *testing.T) {
	moved := newAppointment("a1", staff1, at(10, 0), at(11, 0))
	existing := []*domain.Appointment{moved, newAppointment("a2", staff2, at(10, 30), at(11, 30))}

	guard := NewGuard(newTestValidator(), nil)

	var reverts int
	// overlaps its own old slot and a different resource only
	ev := interaction(moved, at(10, 30), at(11, 30), &reverts)
	require.NoError(t, guard.BeginDrag(ev))

	d := guard.EndDrag(ev, existing)

	assert.True(t, d.Accepted)
	assert.NoError(t, d.Err)
	assert.Equal(t, MovedNotice(), d.Notice)
	assert.Equal(t, domain.NoticeSuccess, d.Notice.Variant)
	assert.Zero(t, reverts)
	assert.False(t, guard.IsDragging())
}

func TestGuard_EndDrag_ToAnotherResource(t *testing.T) {
	moved := newAppointment("a1", staff1, at(10, 0), at(11, 0))
	busy := newAppointment("a2", staff2, at(10, 0), at(11, 0))
	guard := NewGuard(newTestValidator(), nil)

	var reverts int
	ev := interaction(moved, at(10, 0), at(11, 0), &reverts)
	ev.ResourceID = staff2
	require.NoError(t, guard.BeginDrag(ev))

	d := guard.EndDrag(ev, []*domain.Appointment{moved, busy})
	assert.ErrorIs(t, d.Err, ErrSlotConflict)
	assert.Equal(t, 1, reverts)
}

func TestGuard_EndDrag_OutsideBusinessHours(t *testing.T) {
	moved := newAppointment("a1", staff1, at(10, 0), at(11, 0))
	guard := NewGuard(newTestValidator(), nil)

	var reverts int
	ev := interaction(moved, at(7, 0), at(8, 0), &reverts)
	require.NoError(t, guard.BeginDrag(ev))

	d := guard.EndDrag(ev, []*domain.Appointment{moved})

	assert.ErrorIs(t, d.Err, ErrOutOfBusinessHours)
	assert.Equal(t, "Validazione fallita", d.Notice.Title)
	assert.Contains(t, d.Notice.Description, "8:00-20:00")
	assert.Equal(t, 1, reverts)
	assert.False(t, guard.IsDragging())
}

func TestGuard_EndDrag_InvalidInterval(t *testing.T) {
	moved := newAppointment("a1", staff1, at(10, 0), at(11, 0))
	guard := NewGuard(newTestValidator(), nil)

	var reverts int
	ev := interaction(moved, at(11, 0), at(11, 0), &reverts)
	require.NoError(t, guard.BeginDrag(ev))

	d := guard.EndDrag(ev, nil)
	assert.ErrorIs(t, d.Err, ErrInvalidInterval)
	assert.Equal(t, "end time must be after start time", d.Notice.Description)
	assert.Equal(t, 1, reverts)
}

func TestGuard_EndResize(t *testing.T) {
	tests := []struct {
		name     string
		end      time.Time
		existing []*domain.Appointment
		wantErr  error
	}{
		{name: "within bounds", end: at(11, 30)},
		{name: "minimum", end: at(10, 30)},
		{name: "maximum", end: at(14, 0)},
		{name: "below minimum", end: at(10, 15), wantErr: ErrOutOfBoundsDuration},
		{name: "above maximum", end: at(15, 0), wantErr: ErrOutOfBoundsDuration},
		{name: "past closing", end: at(10, 0).Add(10*time.Hour + 30*time.Minute), wantErr: ErrOutOfBoundsDuration},
		{
			name:     "into next appointment",
			end:      at(12, 0),
			existing: []*domain.Appointment{newAppointment("a2", staff1, at(11, 30), at(12, 30))},
			wantErr:  ErrSlotConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resized := newAppointment("a1", staff1, at(10, 0), at(11, 0))
			guard := NewGuard(newTestValidator(), nil)

			var reverts int
			ev := interaction(resized, at(10, 0), tt.end, &reverts)
			require.NoError(t, guard.BeginResize(ev))
			assert.True(t, guard.IsResizing())

			d := guard.EndResize(ev, append([]*domain.Appointment{resized}, tt.existing...))

			assert.False(t, guard.IsResizing())
			assert.Equal(t, StateIdle, guard.State())
			if tt.wantErr != nil {
				assert.ErrorIs(t, d.Err, tt.wantErr)
				assert.False(t, d.Accepted)
				assert.Equal(t, 1, reverts)
				return
			}
			assert.True(t, d.Accepted)
			assert.Equal(t, ResizedNotice(), d.Notice)
			assert.Zero(t, reverts)
		})
	}
}

func TestGuard_EndResize_BoundsMessage(t *testing.T) {
	resized := newAppointment("a1", staff1, at(10, 0), at(11, 0))
	guard := NewGuard(newTestValidator(), nil)

	ev := &Interaction{Appointment: resized, ProposedStart: at(10, 0), ProposedEnd: at(10, 15)}
	require.NoError(t, guard.BeginResize(ev))

	d := guard.EndResize(ev, nil)
	assert.Equal(t, "Validazione fallita", d.Notice.Title)
	assert.Equal(t, "duration must be between 30 minutes and 4 hours", d.Notice.Description)
}

func TestGuard_EndResize_OutsideBusinessHours(t *testing.T) {
	resized := newAppointment("a1", staff1, at(18, 0), at(19, 0))
	guard := NewGuard(newTestValidator(), nil)

	var reverts int
	ev := interaction(resized, at(18, 0), at(21, 0), &reverts)
	require.NoError(t, guard.BeginResize(ev))

	d := guard.EndResize(ev, nil)
	assert.ErrorIs(t, d.Err, ErrOutOfBusinessHours)
	assert.Equal(t, 1, reverts)
}

func TestGuard_EndWithoutBegin(t *testing.T) {
	a := newAppointment("a1", staff1, at(10, 0), at(11, 0))
	guard := NewGuard(newTestValidator(), nil)

	var reverts int
	d := guard.EndDrag(interaction(a, at(12, 0), at(13, 0), &reverts), nil)
	assert.ErrorIs(t, d.Err, ErrNoActiveInteraction)
	assert.Equal(t, 1, reverts)
	assert.Equal(t, StateIdle, guard.State())

	d = guard.EndResize(interaction(a, at(10, 0), at(12, 0), &reverts), nil)
	assert.ErrorIs(t, d.Err, ErrNoActiveInteraction)
	assert.Equal(t, 2, reverts)
}

func TestGuard_MismatchedEnd(t *testing.T) {
	a := newAppointment("a1", staff1, at(10, 0), at(11, 0))
	guard := NewGuard(newTestValidator(), nil)

	var reverts int
	ev := interaction(a, at(10, 0), at(12, 0), &reverts)
	require.NoError(t, guard.BeginDrag(ev))

	d := guard.EndResize(ev, nil)
	assert.ErrorIs(t, d.Err, ErrNoActiveInteraction)
	assert.Equal(t, 1, reverts)
	assert.Equal(t, StateIdle, guard.State())
}

func TestGuard_BeginWhileActive(t *testing.T) {
	a := newAppointment("a1", staff1, at(10, 0), at(11, 0))
	b := newAppointment("a2", staff1, at(12, 0), at(13, 0))
	guard := NewGuard(newTestValidator(), nil)

	require.NoError(t, guard.BeginDrag(&Interaction{Appointment: a}))

	err := guard.BeginResize(&Interaction{Appointment: b})
	assert.ErrorIs(t, err, ErrInteractionInProgress)
	assert.True(t, guard.IsDragging())
}

func TestGuard_InvalidInteraction(t *testing.T) {
	guard := NewGuard(newTestValidator(), nil)

	assert.ErrorIs(t, guard.BeginDrag(nil), ErrInvalidInteraction)
	assert.ErrorIs(t, guard.BeginResize(&Interaction{}), ErrInvalidInteraction)

	d := guard.EndDrag(nil, nil)
	assert.ErrorIs(t, d.Err, ErrInvalidInteraction)
	assert.False(t, d.Accepted)
}

func TestGuard_Abandon(t *testing.T) {
	a := newAppointment("a1", staff1, at(10, 0), at(11, 0))
	guard := NewGuard(newTestValidator(), nil)

	var reverts int
	ev := interaction(a, at(12, 0), at(13, 0), &reverts)
	require.NoError(t, guard.BeginDrag(ev))

	guard.Abandon()

	assert.Equal(t, StateIdle, guard.State())
	assert.Zero(t, reverts)
	assert.Equal(t, at(10, 0), a.Start)

	// a new interaction can start right away
	assert.NoError(t, guard.BeginResize(ev))
}

func TestGuard_PreviewDrag(t *testing.T) {
	a := newAppointment("a1", staff1, at(10, 0), at(11, 0))
	b := newAppointment("a2", staff1, at(12, 0), at(13, 0))
	existing := []*domain.Appointment{a, b}
	guard := NewGuard(newTestValidator(), nil)

	var reverts int
	ev := interaction(a, at(12, 30), at(13, 30), &reverts)
	require.NoError(t, guard.BeginDrag(ev))

	assert.False(t, guard.PreviewDrag(ev, existing))
	assert.True(t, guard.IsDragging(), "preview must not end the drag")
	assert.Zero(t, reverts)

	ev.ProposedStart, ev.ProposedEnd = at(14, 0), at(15, 0)
	assert.True(t, guard.PreviewDrag(ev, existing))

	d := guard.EndDrag(ev, existing)
	assert.True(t, d.Accepted)
}

func TestGuard_IgnoreCancelledPolicy(t *testing.T) {
	cancelled := newAppointment("a2", staff1, at(12, 0), at(13, 0))
	cancelled.Status = domain.StatusCancelled
	moved := newAppointment("a1", staff1, at(10, 0), at(11, 0))
	existing := []*domain.Appointment{moved, cancelled}

	policy := domain.DefaultSchedulingPolicy()
	policy.IgnoreCancelled = true
	guard := NewGuard(NewValidator(policy, time.UTC), nil)

	ev := &Interaction{Appointment: moved, ProposedStart: at(12, 0), ProposedEnd: at(13, 0)}
	require.NoError(t, guard.BeginDrag(ev))
	assert.True(t, guard.EndDrag(ev, existing).Accepted)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeAccepted, Outcome(nil))
	assert.Equal(t, OutcomeConflict, Outcome(ErrSlotConflict))
	assert.Equal(t, OutcomeBusinessHours, Outcome(ErrOutOfBusinessHours))
	assert.Equal(t, OutcomeDurationBounds, Outcome(ErrOutOfBoundsDuration))
	assert.Equal(t, OutcomeInvalidInput, Outcome(ErrInvalidTimeInput))
	assert.Equal(t, OutcomeNoInteraction, Outcome(ErrNoActiveInteraction))
}
