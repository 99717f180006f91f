package get_available_slots

import "errors"

// Некорректная дата возвращается как *scheduling.RejectionError (InvalidTimeFormat)
var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
