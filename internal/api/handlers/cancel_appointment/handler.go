package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	cancelAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID приёма"
	msgMissingBusinessID    = "отсутствует ID бизнеса"
	msgNotFound             = "приём не найден"
	msgForbidden            = "доступ запрещен"
	msgCannotCancel         = "приём нельзя отменить"
)

type Handler struct {
	useCase CancelAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CancelAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	businessID, ok := middleware.GetBusinessID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Missing business ID")
		handlers.RespondUnauthorized(w, msgMissingBusinessID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelAppointment.Request{
		BusinessID:    businessID,
		AppointmentID: appointmentID,
	})
	if err != nil {
		switch {
		case handlers.RespondRejection(w, err):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Rejected: appointment_id=%s, error=%v", appointmentID, err)

		case errors.Is(err, cancelAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelAppointment.ErrForbidden):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Access denied: appointment_id=%s, business_id=%d",
				appointmentID, businessID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelAppointment.ErrCannotCancel):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Cannot cancel: appointment_id=%s", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled successfully: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(&result.Appointment, result.TimezoneOffsetMinutes))
}
