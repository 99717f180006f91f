package cancel_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на отмену приёма
type Request struct {
	BusinessID    int64
	AppointmentID uuid.UUID
}

// Response модель ответа с отменённым приёмом
type Response struct {
	Appointment           domain.Appointment
	TimezoneOffsetMinutes int
}
