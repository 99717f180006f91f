package reschedule_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на перенос приёма
type Request struct {
	BusinessID       int64     // ID бизнеса из заголовка шлюза
	AppointmentID    uuid.UUID // ID приёма
	StartLocal       string    // Новое начало во времени бизнеса, "2024-01-08T10:00"
	DurationMinutes  *int      // Новая длительность (опционально, по умолчанию прежняя)
	DepositConfirmed *bool     // Отметка об оплате депозита (опционально)
}

// Response модель ответа с перенесённым приёмом
type Response struct {
	Appointment           domain.Appointment
	TimezoneOffsetMinutes int
}
