package reset_salon_policy

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/middleware"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/policy"
)

const (
	msgMissingUserID = "ID utente mancante"
	msgNotFound      = "nessuna politica salvata per questo livello"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/salons/{salonId}/policy
// Query params: resourceId (опционально; без него удаляется политика салона)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID := mux.Vars(r)["salonId"]
	resourceID := handlers.OptionalQuery(r, "resourceId")

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /salons/{id}/policy - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Reset(r.Context(), salonID, resourceID, userID); err != nil {
		switch {
		case errors.Is(err, policy.ErrPolicyNotFound):
			h.logger.Warn("DELETE /salons/{id}/policy - Policy not found: salon_id=%s", salonID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /salons/{id}/policy - Failed to reset policy: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /salons/{id}/policy - Policy removed: salon_id=%s, user_id=%s", salonID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
