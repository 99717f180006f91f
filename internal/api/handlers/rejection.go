package handlers

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
)

// RejectionResponse тело ответа при отказе в записи
type RejectionResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
}

// RejectionStatus HTTP статус для вида отказа
func RejectionStatus(kind scheduling.ErrorKind) int {
	switch kind {
	case scheduling.KindInvalidTimeFormat:
		return http.StatusBadRequest
	case scheduling.KindSlotConflict, scheduling.KindPersistenceConflict:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

// RespondRejection отвечает отказом, если err содержит отказ планировщика
// Возвращает false, если err не является отказом
func RespondRejection(w http.ResponseWriter, err error) bool {
	rejection, ok := scheduling.RejectionOf(err)
	if !ok {
		return false
	}
	RespondJSON(w, RejectionStatus(rejection.Reason), RejectionResponse{
		Accepted: false,
		Reason:   string(rejection.Reason),
		Message:  rejection.Message,
	})
	return true
}
