package scheduling

import (
	"fmt"
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// State of the interaction guard
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResizing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Interaction is the payload of a calendar drag or resize gesture
type Interaction struct {
	Appointment   *domain.Appointment
	ProposedStart time.Time
	ProposedEnd   time.Time
	// ResourceID is the target resource when the gesture changes it; empty keeps the current one
	ResourceID string
	// Revert undoes the gesture on the caller's side; called once on rejection
	Revert func()
}

func (i *Interaction) candidate() Candidate {
	resourceID := i.ResourceID
	if resourceID == "" {
		resourceID = i.Appointment.ResourceID
	}
	return Candidate{
		Interval:   Interval{Start: i.ProposedStart, End: i.ProposedEnd},
		SalonID:    i.Appointment.SalonID,
		ResourceID: resourceID,
		ExcludeID:  i.Appointment.ID,
	}
}

// NoticeSink receives the notice of every decision
type NoticeSink interface {
	Notify(n domain.Notice)
}

// NoticeSinkFunc adapts a function to NoticeSink
type NoticeSinkFunc func(n domain.Notice)

func (f NoticeSinkFunc) Notify(n domain.Notice) {
	f(n)
}

// Decision is the result of ending an interaction
type Decision struct {
	Accepted bool
	Err      error
	Notice   domain.Notice
	// Conflict is the overlapping appointment when Err is ErrSlotConflict
	Conflict *domain.Appointment
}

// Reverted reports whether the caller must keep the original times
func (d Decision) Reverted() bool {
	return !d.Accepted
}

// Guard runs one drag or resize interaction at a time.
// Every End* call returns the guard to Idle whatever the outcome.
// Not safe for concurrent use.
type Guard struct {
	validator *Validator
	sink      NoticeSink

	state    State
	activeID string
}

// NewGuard creates a guard; sink may be nil
func NewGuard(validator *Validator, sink NoticeSink) *Guard {
	return &Guard{validator: validator, sink: sink}
}

func (g *Guard) State() State {
	return g.state
}

func (g *Guard) IsDragging() bool {
	return g.state == StateDragging
}

func (g *Guard) IsResizing() bool {
	return g.state == StateResizing
}

// BeginDrag enters Dragging. No validation happens here.
func (g *Guard) BeginDrag(ev *Interaction) error {
	return g.begin(StateDragging, ev)
}

// BeginResize enters Resizing
func (g *Guard) BeginResize(ev *Interaction) error {
	return g.begin(StateResizing, ev)
}

// PreviewDrag is an advisory overlap pre-check for the drag in progress.
// It never changes state and never reverts.
func (g *Guard) PreviewDrag(ev *Interaction, existing []*domain.Appointment) bool {
	if ev == nil || ev.Appointment == nil {
		return false
	}
	return g.validator.Checker.IsAvailable(ev.candidate(), existing)
}

// EndDrag validates the moved interval: interval validity, business hours, availability
func (g *Guard) EndDrag(ev *Interaction, existing []*domain.Appointment) Decision {
	return g.end(StateDragging, ev, existing, g.validator.CheckPlacement, MovedNotice())
}

// EndResize validates the resized interval: interval validity, duration bounds,
// business hours, availability
func (g *Guard) EndResize(ev *Interaction, existing []*domain.Appointment) Decision {
	return g.end(StateResizing, ev, existing, g.validator.CheckResize, ResizedNotice())
}

// Abandon drops the active interaction without a decision
func (g *Guard) Abandon() {
	g.state = StateIdle
	g.activeID = ""
}

func (g *Guard) begin(state State, ev *Interaction) error {
	if ev == nil || ev.Appointment == nil {
		return ErrInvalidInteraction
	}
	if g.state != StateIdle {
		return fmt.Errorf("%w: guard is %s", ErrInteractionInProgress, g.state)
	}
	g.state = state
	g.activeID = ev.Appointment.ID
	return nil
}

type checkFunc func(c Candidate, existing []*domain.Appointment) (*domain.Appointment, error)

func (g *Guard) end(want State, ev *Interaction, existing []*domain.Appointment, check checkFunc, accepted domain.Notice) Decision {
	matched := g.state == want && ev != nil && ev.Appointment != nil && ev.Appointment.ID == g.activeID
	g.Abandon()

	var d Decision
	switch {
	case ev == nil || ev.Appointment == nil:
		d = g.reject(ErrInvalidInteraction, nil)
	case !matched:
		d = g.reject(fmt.Errorf("%w: expected %s", ErrNoActiveInteraction, want), nil)
	default:
		conflict, err := check(ev.candidate(), existing)
		if err != nil {
			d = g.reject(err, conflict)
		} else {
			d = Decision{Accepted: true, Notice: accepted}
		}
	}

	if !d.Accepted && ev != nil && ev.Revert != nil {
		ev.Revert()
	}
	if g.sink != nil {
		g.sink.Notify(d.Notice)
	}
	return d
}

func (g *Guard) reject(err error, conflict *domain.Appointment) Decision {
	return Decision{
		Err:      err,
		Notice:   NoticeFor(err, g.validator.Policy),
		Conflict: conflict,
	}
}
