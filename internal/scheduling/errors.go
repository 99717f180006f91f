package scheduling

import (
	"errors"
	"fmt"
)

// ErrorKind причина отказа в операции бронирования
type ErrorKind string

const (
	KindInvalidTimeFormat          ErrorKind = "InvalidTimeFormat"
	KindOutOfBookingWindow         ErrorKind = "OutOfBookingWindow"
	KindOutsideBusinessHours       ErrorKind = "OutsideBusinessHours"
	KindSlotConflict               ErrorKind = "SlotConflict"
	KindDailyCapacityExceeded      ErrorKind = "DailyCapacityExceeded"
	KindDepositRequired            ErrorKind = "DepositRequired"
	KindCancellationWindowViolated ErrorKind = "CancellationWindowViolated"
	KindPersistenceConflict        ErrorKind = "PersistenceConflict"
)

// Сентинелы, с которыми errors.Is сопоставляет *RejectionError того же вида
var (
	ErrInvalidTimeFormat          = errors.New("scheduling: invalid time format")
	ErrOutOfBookingWindow         = errors.New("scheduling: out of booking window")
	ErrOutsideBusinessHours       = errors.New("scheduling: outside business hours")
	ErrSlotConflict               = errors.New("scheduling: slot conflict")
	ErrDailyCapacityExceeded      = errors.New("scheduling: daily capacity exceeded")
	ErrDepositRequired            = errors.New("scheduling: deposit required")
	ErrCancellationWindowViolated = errors.New("scheduling: cancellation window violated")
	ErrPersistenceConflict        = errors.New("scheduling: persistence conflict")
)

var kindSentinels = map[ErrorKind]error{
	KindInvalidTimeFormat:          ErrInvalidTimeFormat,
	KindOutOfBookingWindow:         ErrOutOfBookingWindow,
	KindOutsideBusinessHours:       ErrOutsideBusinessHours,
	KindSlotConflict:               ErrSlotConflict,
	KindDailyCapacityExceeded:      ErrDailyCapacityExceeded,
	KindDepositRequired:            ErrDepositRequired,
	KindCancellationWindowViolated: ErrCancellationWindowViolated,
	KindPersistenceConflict:        ErrPersistenceConflict,
}

// Сообщения для клиента, отправляются в WhatsApp как есть
var kindMessages = map[ErrorKind]string{
	KindInvalidTimeFormat:          "La fecha u hora no tiene un formato válido",
	KindOutOfBookingWindow:         "Esa fecha está fuera del periodo en que se pueden agendar citas",
	KindOutsideBusinessHours:       "El negocio no atiende en ese horario",
	KindSlotConflict:               "Ese horario ya no está disponible",
	KindDailyCapacityExceeded:      "Ya no quedan citas disponibles para ese día",
	KindDepositRequired:            "Se requiere un depósito para confirmar la cita",
	KindCancellationWindowViolated: "La cita ya no puede cancelarse",
	KindPersistenceConflict:        "Ese horario ya no está disponible, por favor intenta de nuevo",
}

// Sentinel возвращает ошибку, с которой errors.Is сопоставляет этот вид
func (k ErrorKind) Sentinel() error {
	return kindSentinels[k]
}

// Message возвращает сообщение для клиента по умолчанию
func (k ErrorKind) Message() string {
	return kindMessages[k]
}

// Rejection ожидаемый отказ вместе с причиной
type Rejection struct {
	Reason  ErrorKind
	Message string
}

func newRejection(kind ErrorKind) *Rejection {
	return &Rejection{Reason: kind, Message: kind.Message()}
}

// Err превращает отказ в ошибку
func (r *Rejection) Err() error {
	if r == nil {
		return nil
	}
	return &RejectionError{Kind: r.Reason, Message: r.Message}
}

// RejectionError передает отказ через возвращаемые ошибки
type RejectionError struct {
	Kind    ErrorKind
	Message string
}

// NewRejectionError создает ошибку указанного вида с сообщением по умолчанию
func NewRejectionError(kind ErrorKind) *RejectionError {
	return &RejectionError{Kind: kind, Message: kind.Message()}
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is сопоставляет ошибку с сентинелом её вида
func (e *RejectionError) Is(target error) bool {
	sentinel := e.Kind.Sentinel()
	return sentinel != nil && target == sentinel
}

// KindOf извлекает вид отказа из цепочки ошибок
func KindOf(err error) (ErrorKind, bool) {
	var rejErr *RejectionError
	if errors.As(err, &rejErr) {
		return rejErr.Kind, true
	}
	return "", false
}

// RejectionOf извлекает отказ из цепочки ошибок
func RejectionOf(err error) (*Rejection, bool) {
	var rejErr *RejectionError
	if errors.As(err, &rejErr) {
		return &Rejection{Reason: rejErr.Kind, Message: rejErr.Message}, true
	}
	return nil, false
}

// ErrInvalidMonth возвращается, если год и месяц не образуют корректную дату
var ErrInvalidMonth = errors.New("scheduling: invalid month")
