package get_month_calendar

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	getMonthCalendar "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_month_calendar"
)

// CalendarCellResponse один день сетки
type CalendarCellResponse struct {
	Date           string                       `json:"date"`
	InCurrentMonth bool                         `json:"inCurrentMonth"`
	Appointments   []models.AppointmentResponse `json:"appointments"`
}

// MonthCalendarResponse сетка месяца из 42 дней
type MonthCalendarResponse struct {
	BusinessID            int64                  `json:"businessId"`
	Year                  int                    `json:"year"`
	Month                 int                    `json:"month"`
	TimezoneOffsetMinutes int                    `json:"timezoneOffsetMinutes"`
	Cells                 []CalendarCellResponse `json:"cells"`
}

// ToUseCaseRequest разбирает query параметры year, month, includeCancelled
func ToUseCaseRequest(businessID int64, query url.Values) (*getMonthCalendar.Request, error) {
	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		return nil, fmt.Errorf("year: %w", err)
	}

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		return nil, fmt.Errorf("month: %w", err)
	}

	req := &getMonthCalendar.Request{
		BusinessID: businessID,
		Year:       year,
		Month:      time.Month(month),
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		if req.IncludeCancelled, err = strconv.ParseBool(raw); err != nil {
			return nil, fmt.Errorf("includeCancelled: %w", err)
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в DTO
func FromUseCaseResponse(resp *getMonthCalendar.Response) *MonthCalendarResponse {
	result := &MonthCalendarResponse{
		BusinessID:            resp.BusinessID,
		Year:                  resp.Year,
		Month:                 int(resp.Month),
		TimezoneOffsetMinutes: resp.TimezoneOffsetMinutes,
		Cells:                 make([]CalendarCellResponse, 0, len(resp.Cells)),
	}

	for _, c := range resp.Cells {
		result.Cells = append(result.Cells, CalendarCellResponse{
			Date:           c.Date.String(),
			InCurrentMonth: c.InCurrentMonth,
			Appointments:   models.FromDomainAppointments(c.Appointments, resp.TimezoneOffsetMinutes).Appointments,
		})
	}

	return result
}
