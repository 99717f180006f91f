package models

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListAppointmentsRequest запрос на получение приёмов бизнеса
// From и To задаются локальными датами бизнеса включительно
type ListAppointmentsRequest struct {
	BusinessID       int64       `json:"businessId"`
	From             *civil.Date `json:"from,omitempty"`
	To               *civil.Date `json:"to,omitempty"`
	Status           *string     `json:"status,omitempty"`
	IncludeCancelled bool        `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter(offsetMinutes int) (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		BusinessID:       r.BusinessID,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return filter, fmt.Errorf("period end %s is before start %s", r.To, r.From)
	}

	conv := scheduling.NewConverter(offsetMinutes)
	if r.From != nil {
		from := conv.StartOfDay(*r.From)
		filter.From = &from
	}
	if r.To != nil {
		to := conv.StartOfDay(r.To.AddDays(1))
		filter.To = &to
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		if status == domain.StatusCancelled {
			filter.IncludeCancelled = true
		}
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса приёма
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// AppointmentResponse ответ с данными приёма
type AppointmentResponse struct {
	ID               string    `json:"id"`
	BusinessID       int64     `json:"businessId"`
	CustomerName     string    `json:"customerName"`
	CustomerPhone    string    `json:"customerPhone"`
	ServiceName      string    `json:"serviceName"`
	StartLocal       string    `json:"startLocal"` // "2024-01-08T10:00" во времени бизнеса
	EndLocal         string    `json:"endLocal"`
	StartAt          time.Time `json:"startAt"`
	EndAt            time.Time `json:"endAt"`
	DurationMinutes  int       `json:"durationMinutes"`
	Status           string    `json:"status"`
	Notes            *string   `json:"notes,omitempty"`
	DepositConfirmed bool      `json:"depositConfirmed"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком приёмов
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment, offsetMinutes int) *AppointmentResponse {
	if a == nil {
		return nil
	}

	conv := scheduling.NewConverter(offsetMinutes)
	return &AppointmentResponse{
		ID:               a.ID.String(),
		BusinessID:       a.BusinessID,
		CustomerName:     a.CustomerName,
		CustomerPhone:    a.CustomerPhone,
		ServiceName:      a.ServiceName,
		StartLocal:       scheduling.FormatLocalDateTime(conv.ToLocal(a.StartAt)),
		EndLocal:         scheduling.FormatLocalDateTime(conv.ToLocal(a.EndAt)),
		StartAt:          a.StartAt.UTC(),
		EndAt:            a.EndAt.UTC(),
		DurationMinutes:  int(a.Duration() / time.Minute),
		Status:           string(a.Status),
		Notes:            a.Notes,
		DepositConfirmed: a.DepositConfirmed,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// FromDomainAppointments конвертирует список приёмов
func FromDomainAppointments(list []domain.Appointment, offsetMinutes int) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}
	for i := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(&list[i], offsetMinutes))
	}
	return resp
}

// ToDomainStatus конвертирует строку в статус
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}
