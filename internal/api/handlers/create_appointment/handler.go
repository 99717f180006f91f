package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные приёма"
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

// Handle POST /api/v1/businesses/{businessId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/appointments - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(businessID))
	if err != nil {
		switch {
		case handlers.RespondRejection(w, err):
			h.logger.Warn("POST /businesses/{id}/appointments - Rejected: business_id=%d, start=%s, error=%v",
				businessID, req.StartLocal, err)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/appointments - Invalid data: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /businesses/{id}/appointments - Failed to create appointment: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/appointments - Appointment created successfully: appointment_id=%s, business_id=%d",
		result.Appointment.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(&result.Appointment, result.TimezoneOffsetMinutes))
}
