package get_salon_policy

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
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

// Handle GET /api/v1/salons/{salonId}/policy
// Query params: resourceId (опционально)
// Публичный эндпоинт - календарь строит по нему сетку и списки выбора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID := mux.Vars(r)["salonId"]
	resourceID := handlers.OptionalQuery(r, "resourceId")

	// Политика всегда есть: при отсутствии записей используются значения по умолчанию
	result, err := h.service.GetEffective(r.Context(), salonID, resourceID)
	if err != nil {
		h.logger.Error("GET /salons/{id}/policy - Failed to get policy: salon_id=%s, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/policy - Policy retrieved successfully: salon_id=%s, level=%s", salonID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}
