package scheduling

import (
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

const (
	testSalon = "salon-1"
	staff1    = "staff1"
	staff2    = "staff2"
)

func at(h, m int) time.Time {
	return time.Date(2024, 3, 20, h, m, 0, 0, time.UTC)
}

func newAppointment(id, resourceID string, start, end time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:         id,
		SalonID:    testSalon,
		ResourceID: resourceID,
		Start:      start,
		End:        end,
		Status:     domain.StatusConfirmed,
	}
}

func candidate(resourceID string, start, end time.Time) Candidate {
	return Candidate{
		Interval:   Interval{Start: start, End: end},
		SalonID:    testSalon,
		ResourceID: resourceID,
	}
}

func newTestValidator() *Validator {
	return NewValidator(domain.DefaultSchedulingPolicy(), time.UTC)
}
