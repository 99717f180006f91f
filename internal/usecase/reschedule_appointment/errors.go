package reschedule_appointment

import "errors"

// Отказы валидатора и окна отмены возвращаются как *scheduling.RejectionError
var (
	// ErrAppointmentNotFound возвращается, когда приём не найден
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrForbidden возвращается, когда приём принадлежит другому бизнесу
	ErrForbidden = errors.New("reschedule_appointment: appointment belongs to another business")

	// ErrCannotReschedule возвращается для отменённых и завершённых приёмов
	ErrCannotReschedule = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
