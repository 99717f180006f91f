package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus состояние жизненного цикла приёма
type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "pending"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusCompleted   AppointmentStatus = "completed"
	StatusNoShow      AppointmentStatus = "no_show"
)

// IsValid возвращает true для известных статусов
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRescheduled, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// Appointment забронированный промежуток времени бизнеса.
// StartAt и EndAt абсолютные моменты, местное время бизнеса
// вычисляется по BookingRules.TimezoneOffsetMinutes
type Appointment struct {
	ID            uuid.UUID
	BusinessID    int64
	CustomerName  string
	CustomerPhone string
	ServiceName   string
	StartAt       time.Time
	EndAt         time.Time
	Status        AppointmentStatus
	Notes         *string

	DepositConfirmed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration возвращает длительность приёма
func (a *Appointment) Duration() time.Duration {
	return a.EndAt.Sub(a.StartAt)
}

// IsCancelled возвращает true, если приём больше не занимает слот
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// OccupiesSlot возвращает true, если приём блокирует свой промежуток для других
func (a *Appointment) OccupiesSlot() bool {
	return !a.IsCancelled()
}

// IsActive возвращает true, если приём ещё предстоит
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed || a.Status == StatusRescheduled
}

// CanBeCancelled возвращает true, если статус допускает отмену
func (a *Appointment) CanBeCancelled() bool {
	return a.IsActive()
}

// CanBeRescheduled возвращает true, если статус допускает перенос
func (a *Appointment) CanBeRescheduled() bool {
	return a.IsActive()
}

// CanTransitionTo проверяет, может ли действие бизнеса перевести приём
// в статус next. Для отмены и переноса есть отдельные операции
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch next {
	case StatusConfirmed:
		return a.Status == StatusPending
	case StatusCompleted, StatusNoShow:
		return a.IsActive()
	}
	return false
}

// AppointmentsFilter отбирает приёмы одного бизнеса
type AppointmentsFilter struct {
	BusinessID       int64      // Обязательный параметр
	From             *time.Time // Приём заканчивается после From (опционально)
	To               *time.Time // Приём начинается до To (опционально)
	Status           *AppointmentStatus
	IncludeCancelled bool       // Включать ли отменённые приёмы
	ExcludeID        *uuid.UUID // Исключить приём (используется при переносе)
}

// AppointmentPatch изменяемые поля приёма, nil означает без изменений
type AppointmentPatch struct {
	StartAt          *time.Time
	EndAt            *time.Time
	Status           *AppointmentStatus
	Notes            *string
	DepositConfirmed *bool
}

// IsEmpty возвращает true, если патч ничего не меняет
func (p AppointmentPatch) IsEmpty() bool {
	return p.StartAt == nil && p.EndAt == nil && p.Status == nil && p.Notes == nil && p.DepositConfirmed == nil
}
