package get_month_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getMonthCalendar "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_month_calendar"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidParams     = "некорректные параметры запроса, ожидаются year и month"
)

type Handler struct {
	useCase GetMonthCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/calendar
// Query params: year, month (required), includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/calendar - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(businessID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/calendar - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getMonthCalendar.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/calendar - Invalid data: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /businesses/{id}/calendar - Failed to build calendar: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/calendar - Calendar built successfully: business_id=%d, year=%d, month=%d",
		businessID, result.Year, result.Month)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
