package create_appointment

import (
	"fmt"
	"strings"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Дата, время и длительность проверяются резолвером
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.SalonID) == "" {
		return fmt.Errorf("%w: salonId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ResourceID) == "" {
		return fmt.Errorf("%w: resourceId is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
