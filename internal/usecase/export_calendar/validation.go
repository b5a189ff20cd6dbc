package export_calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.SalonID) == "" || strings.TrimSpace(req.ResourceID) == "" {
		return fmt.Errorf("%w: salonId and resourceId are required", ErrInvalidInput)
	}

	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidPeriod)
	}

	if req.To.Sub(req.From) > domain.MaxListRange {
		return fmt.Errorf("%w: period must not exceed %d days", ErrInvalidPeriod, int(domain.MaxListRange/(24*time.Hour)))
	}

	return nil
}
