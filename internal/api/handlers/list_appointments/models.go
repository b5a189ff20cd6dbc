package list_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(salonID string, query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{
		SalonID:          salonID,
		IncludeCancelled: false, // По умолчанию только активные
	}

	if resourceID := query.Get("resourceId"); resourceID != "" {
		req.ResourceID = &resourceID
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.To = &to
	}

	if includeStr := query.Get("includeCancelled"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = include
	}

	return req, nil
}
