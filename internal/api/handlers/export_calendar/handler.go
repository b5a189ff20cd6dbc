package export_calendar

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
	exportCalendar "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/export_calendar"
)

const (
	msgInvalidParams = "parametri della richiesta non validi"
	msgInvalidPeriod = "periodo non valido"

	contentTypeCalendar = "text/calendar; charset=utf-8"
)

type Handler struct {
	useCase ExportCalendarUseCase
	logger  Logger
}

func NewHandler(useCase ExportCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/resources/{resourceId}/calendar.ics
// Query params: from, to (RFC3339), includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonID := vars["salonId"]
	resourceID := vars["resourceId"]

	from, err := handlers.ParseTimeParam(r, "from")
	if err != nil {
		h.logger.Warn("GET /resources/{id}/calendar.ics - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	to, err := handlers.ParseTimeParam(r, "to")
	if err != nil {
		h.logger.Warn("GET /resources/{id}/calendar.ics - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &exportCalendar.Request{
		SalonID:    salonID,
		ResourceID: resourceID,
		From:       from,
		To:         to,
	}
	if raw := handlers.OptionalQuery(r, "includeCancelled"); raw != nil {
		include, err := strconv.ParseBool(*raw)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/calendar.ics - Invalid includeCancelled: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.IncludeCancelled = include
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, exportCalendar.ErrInvalidPeriod):
			h.logger.Warn("GET /resources/{id}/calendar.ics - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, exportCalendar.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/calendar.ics - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /resources/{id}/calendar.ics - Failed to export calendar: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/calendar.ics - Calendar exported: resource_id=%s, events=%d", resourceID, result.Count)

	w.Header().Set("Content-Type", contentTypeCalendar)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		h.logger.Error("GET /resources/{id}/calendar.ics - Failed to write response: %v", err)
	}
}
