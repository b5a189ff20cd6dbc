package handlers

import (
	"errors"
	"net/http"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
)

// StatusForValidation возвращает HTTP статус для ошибки валидации расписания:
// 409 - конфликт, 400 - некорректный ввод, 422 - нарушение правил салона
func StatusForValidation(err error) int {
	switch {
	case errors.Is(err, scheduling.ErrSlotConflict):
		return http.StatusConflict
	case errors.Is(err, scheduling.ErrInvalidTimeInput):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

// RespondRejection отвечает уведомлением, если err - отклонение валидатора
// Возвращает false, если err другого типа и ответ не записан
func RespondRejection(w http.ResponseWriter, err error) bool {
	rej, ok := scheduling.AsRejection(err)
	if !ok {
		return false
	}

	resp := RejectionResponse{
		Error:  rej.Notice.Description,
		Notice: FromDomainNotice(rej.Notice),
	}
	if rej.Conflict != nil {
		resp.ConflictingID = &rej.Conflict.ID
	}

	RespondJSON(w, StatusForValidation(rej.Err), resp)
	return true
}
