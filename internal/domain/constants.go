package domain

// Границы правил бронирования
const (
	MinBufferMinutes         = 0
	MaxBufferMinutes         = 240
	MinTimezoneOffsetMinutes = -720 // UTC-12:00
	MaxTimezoneOffsetMinutes = 840  // UTC+14:00
	MaxNoShowPolicyLength    = 2000
)

// Константы валидации приёмов
const (
	MinAppointmentDurationMinutes = 5
	MaxAppointmentDurationMinutes = 720 // 12 hours
	MaxNotesLength                = 500
	MaxCustomerNameLength         = 200
	MaxServiceNameLength          = 200
	MaxCustomerPhoneLength        = 32
)

// Форматы времени
const (
	TimeFormat          = "15:04"            // HH:MM
	DateFormat          = "2006-01-02"       // YYYY-MM-DD
	LocalDateTimeFormat = "2006-01-02T15:04" // YYYY-MM-DDTHH:MM
)

// CalendarGridSize число ячеек в сетке месяца (6 недель x 7 дней)
const CalendarGridSize = 42

// SlotHoldingStatuses статусы приёмов, занимающих свой промежуток
var SlotHoldingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusRescheduled,
	StatusCompleted,
	StatusNoShow,
}

// ActiveStatuses статусы предстоящих приёмов
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusRescheduled,
}
