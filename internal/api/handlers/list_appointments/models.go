package list_appointments

import (
	"net/url"
	"strconv"

	"cloud.google.com/go/civil"

	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// ToServiceRequest разбирает query параметры
// Параметры: from, to (YYYY-MM-DD), status, includeCancelled
func ToServiceRequest(businessID int64, query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{BusinessID: businessID}

	var err error
	if req.From, err = parseOptionalDate(query.Get("from")); err != nil {
		return nil, err
	}
	if req.To, err = parseOptionalDate(query.Get("to")); err != nil {
		return nil, err
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		if req.IncludeCancelled, err = strconv.ParseBool(raw); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func parseOptionalDate(s string) (*civil.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := scheduling.ParseLocalDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
