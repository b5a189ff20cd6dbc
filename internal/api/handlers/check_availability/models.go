package check_availability

import (
	"time"

	checkAvailability "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available           bool      `json:"available"`
	WithinBusinessHours bool      `json:"withinBusinessHours"`
	ConflictingID       *string   `json:"conflictingAppointmentId,omitempty"`
	Start               time.Time `json:"start"`
	End                 time.Time `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available:           resp.Available,
		WithinBusinessHours: resp.WithinBusinessHours,
		ConflictingID:       resp.ConflictID,
		Start:               resp.Start,
		End:                 resp.End,
	}
}
