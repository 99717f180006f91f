package reschedule_appointment

import (
	"github.com/google/uuid"

	rescheduleAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest тело запроса на перенос приёма
type RescheduleAppointmentRequest struct {
	StartLocal       string `json:"startLocal"` // "2024-01-08T10:00"
	DurationMinutes  *int   `json:"durationMinutes,omitempty"`
	DepositConfirmed *bool  `json:"depositConfirmed,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(businessID int64, appointmentID uuid.UUID) *rescheduleAppointment.Request {
	return &rescheduleAppointment.Request{
		BusinessID:       businessID,
		AppointmentID:    appointmentID,
		StartLocal:       r.StartLocal,
		DurationMinutes:  r.DurationMinutes,
		DepositConfirmed: r.DepositConfirmed,
	}
}
