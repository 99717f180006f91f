package create_appointment

import (
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest модель HTTP запроса
type CreateAppointmentRequest struct {
	CustomerName     string  `json:"customerName"`
	CustomerPhone    string  `json:"customerPhone"`
	ServiceName      string  `json:"serviceName"`
	StartLocal       string  `json:"startLocal"` // "2024-01-08T10:00"
	DurationMinutes  int     `json:"durationMinutes"`
	Notes            *string `json:"notes,omitempty"`
	DepositConfirmed bool    `json:"depositConfirmed,omitempty"`
	Pending          bool    `json:"pending,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(businessID int64) *createAppointment.Request {
	return &createAppointment.Request{
		BusinessID:       businessID,
		CustomerName:     r.CustomerName,
		CustomerPhone:    r.CustomerPhone,
		ServiceName:      r.ServiceName,
		StartLocal:       r.StartLocal,
		DurationMinutes:  r.DurationMinutes,
		DepositConfirmed: r.DepositConfirmed,
		Notes:            r.Notes,
		Pending:          r.Pending,
	}
}
