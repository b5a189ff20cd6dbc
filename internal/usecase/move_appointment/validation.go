package move_appointment

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
// Порядок start/end проверяет guard
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.SalonID) == "" {
		return fmt.Errorf("%w: salonId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.AppointmentID) == "" {
		return fmt.Errorf("%w: appointmentId is required", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if req.ResourceID != nil && strings.TrimSpace(*req.ResourceID) == "" {
		return fmt.Errorf("%w: resourceId must not be empty", ErrInvalidInput)
	}

	return nil
}
