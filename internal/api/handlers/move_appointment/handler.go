package move_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/middleware"
	moveAppointment "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/move_appointment"
)

const (
	msgInvalidRequestBody = "corpo della richiesta non valido"
	msgMissingUserID      = "ID utente mancante"
	msgInvalidInput       = "dati della richiesta non validi"
	msgNotFound           = "appuntamento non trovato"
	msgCannotMove         = "l'appuntamento non può essere spostato"
)

type Handler struct {
	useCase MoveAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase MoveAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/appointments/{appointmentId}/move
// 200 - перенос принят, 409/422 - отклонен (тело то же, календарь откатывает запись)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonID := vars["salonId"]
	appointmentID := vars["appointmentId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/move - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req MoveAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(salonID, appointmentID, userID))
	if err != nil {
		switch {
		case errors.Is(err, moveAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/move - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, moveAppointment.ErrCannotReschedule):
			h.logger.Warn("POST /appointments/{id}/move - Cannot move: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgCannotMove)

		case errors.Is(err, moveAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/move - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/{id}/move - Failed to move appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Accepted {
		h.logger.Warn("POST /appointments/{id}/move - Rejected: appointment_id=%s, reason=%v", appointmentID, result.Reason)
		handlers.RespondJSON(w, handlers.StatusForValidation(result.Reason), FromUseCaseResponse(result))
		return
	}

	h.logger.Info("POST /appointments/{id}/move - Appointment moved: appointment_id=%s, user_id=%s", appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
