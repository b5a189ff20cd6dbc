package scheduling

import "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"

// Candidate is the interval under evaluation, built fresh for every check
type Candidate struct {
	Interval
	SalonID    string
	ResourceID string
	// ExcludeID is the id of the appointment being edited; empty means none
	ExcludeID string
}

// Checker decides whether a candidate interval is free on its resource.
// The zero value counts appointments of every status.
type Checker struct {
	IgnoreCancelled bool
}

// IsAvailable reports whether no relevant appointment overlaps the candidate
func (c Checker) IsAvailable(candidate Candidate, existing []*domain.Appointment) bool {
	return c.FindConflict(candidate, existing) == nil
}

// FindConflict returns the first appointment overlapping the candidate, or nil
func (c Checker) FindConflict(candidate Candidate, existing []*domain.Appointment) *domain.Appointment {
	for _, a := range existing {
		if !c.relevant(candidate, a) {
			continue
		}
		if Overlaps(candidate.Interval, Interval{Start: a.Start, End: a.End}) {
			return a
		}
	}
	return nil
}

func (c Checker) relevant(candidate Candidate, a *domain.Appointment) bool {
	if a == nil {
		return false
	}
	if a.SalonID != candidate.SalonID || a.ResourceID != candidate.ResourceID {
		return false
	}
	if candidate.ExcludeID != "" && a.ID == candidate.ExcludeID {
		return false
	}
	if c.IgnoreCancelled && a.IsCancelled() {
		return false
	}
	return true
}

// IsAvailable checks the candidate with a Checker that counts every status
func IsAvailable(candidate Candidate, existing []*domain.Appointment) bool {
	return Checker{}.IsAvailable(candidate, existing)
}
