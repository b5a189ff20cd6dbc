package check_availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
	checkAvailability "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/check_availability"
)

const (
	msgInvalidParams   = "parametri della richiesta non validi"
	msgInvalidInterval = "l'orario di fine deve essere successivo all'orario di inizio"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/availability
// Query params: resourceId, start, end (RFC3339), excludeId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID := mux.Vars(r)["salonId"]

	start, err := handlers.ParseTimeParam(r, "start")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	end, err := handlers.ParseTimeParam(r, "end")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &checkAvailability.Request{
		SalonID:    salonID,
		ResourceID: strings.TrimSpace(r.URL.Query().Get("resourceId")),
		Start:      start,
		End:        end,
		ExcludeID:  strings.TrimSpace(r.URL.Query().Get("excludeId")),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInterval):
			h.logger.Warn("GET /salons/{id}/availability - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /salons/{id}/availability - Failed to check availability: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
