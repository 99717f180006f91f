package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	rescheduleAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID приёма"
	msgMissingBusinessID    = "отсутствует ID бизнеса"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidData          = "некорректные данные переноса"
	msgNotFound             = "приём не найден"
	msgForbidden            = "доступ запрещен"
	msgCannotReschedule     = "приём нельзя перенести"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	businessID, ok := middleware.GetBusinessID(r.Context())
	if !ok {
		h.logger.Warn("PUT /appointments/{id} - Missing business ID")
		handlers.RespondUnauthorized(w, msgMissingBusinessID)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(businessID, appointmentID))
	if err != nil {
		switch {
		case handlers.RespondRejection(w, err):
			h.logger.Warn("PUT /appointments/{id} - Rejected: appointment_id=%s, start=%s, error=%v",
				appointmentID, req.StartLocal, err)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - Invalid data: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrForbidden):
			h.logger.Warn("PUT /appointments/{id} - Access denied: appointment_id=%s, business_id=%d",
				appointmentID, businessID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleAppointment.ErrCannotReschedule):
			h.logger.Warn("PUT /appointments/{id} - Cannot reschedule: appointment_id=%s", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgCannotReschedule)

		default:
			h.logger.Error("PUT /appointments/{id} - Failed to reschedule appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id} - Appointment rescheduled successfully: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(&result.Appointment, result.TimezoneOffsetMinutes))
}
