package create_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/middleware"
	createAppointment "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "corpo della richiesta non valido"
	msgMissingUserID      = "ID utente mancante"
	msgInvalidInput       = "dati della richiesta non validi"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID := mux.Vars(r)["salonId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(salonID, userID))
	if err != nil {
		if handlers.RespondRejection(w, err) {
			h.logger.Warn("POST /salons/{id}/appointments - Rejected: salon_id=%s, resource_id=%s, error=%v",
				salonID, req.ResourceID, err)
			return
		}

		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /salons/{id}/appointments - Failed to create appointment: salon_id=%s, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/appointments - Appointment created: appointment_id=%s, salon_id=%s, user_id=%s",
		result.Appointment.ID, salonID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
