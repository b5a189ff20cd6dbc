package get_time_options

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
	getTimeOptions "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/get_time_options"
)

const (
	msgInvalidParams = "parametri della richiesta non validi"
	msgInvalidTime   = "formato orario non valido, atteso HH:MM con durata positiva"
)

type Handler struct {
	useCase GetTimeOptionsUseCase
	logger  Logger
}

func NewHandler(useCase GetTimeOptionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/time-options
// Query params: resourceId, startTime, duration (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID := mux.Vars(r)["salonId"]

	req := &getTimeOptions.Request{
		SalonID:    salonID,
		ResourceID: handlers.OptionalQuery(r, "resourceId"),
		StartTime:  r.URL.Query().Get("startTime"),
	}

	if raw := handlers.OptionalQuery(r, "duration"); raw != nil {
		duration, err := strconv.Atoi(*raw)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/time-options - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.DurationMinutes = duration
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getTimeOptions.ErrInvalidTimeInput):
			h.logger.Warn("GET /salons/{id}/time-options - Invalid time input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, getTimeOptions.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/time-options - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /salons/{id}/time-options - Failed to get options: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
