package cancel_appointment

import "errors"

// Нарушение окна отмены возвращается как *scheduling.RejectionError
var (
	// ErrAppointmentNotFound возвращается, когда приём не найден
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrForbidden возвращается, когда приём принадлежит другому бизнесу
	ErrForbidden = errors.New("cancel_appointment: appointment belongs to another business")

	// ErrCannotCancel возвращается для уже отменённых и завершённых приёмов
	ErrCannotCancel = errors.New("cancel_appointment: appointment cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)
