package resize_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/middleware"
	resizeAppointment "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/resize_appointment"
)

const (
	msgInvalidRequestBody = "corpo della richiesta non valido"
	msgMissingUserID      = "ID utente mancante"
	msgInvalidInput       = "dati della richiesta non validi"
	msgNotFound           = "appuntamento non trovato"
	msgCannotResize       = "la durata dell'appuntamento non può essere modificata"
)

type Handler struct {
	useCase ResizeAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ResizeAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/appointments/{appointmentId}/resize
// 200 - изменение принято, 409/422 - отклонено (тело то же, календарь откатывает запись)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonID := vars["salonId"]
	appointmentID := vars["appointmentId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/resize - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ResizeAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/resize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(salonID, appointmentID, userID))
	if err != nil {
		switch {
		case errors.Is(err, resizeAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/resize - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, resizeAppointment.ErrCannotReschedule):
			h.logger.Warn("POST /appointments/{id}/resize - Cannot resize: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgCannotResize)

		case errors.Is(err, resizeAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/resize - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/{id}/resize - Failed to resize appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Accepted {
		h.logger.Warn("POST /appointments/{id}/resize - Rejected: appointment_id=%s, reason=%v", appointmentID, result.Reason)
		handlers.RespondJSON(w, handlers.StatusForValidation(result.Reason), FromUseCaseResponse(result))
		return
	}

	h.logger.Info("POST /appointments/{id}/resize - Appointment resized: appointment_id=%s, user_id=%s", appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
