package domain

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AvailableSlot время начала, которое бизнес ещё может принять
type AvailableSlot struct {
	Date            civil.Date
	StartTime       types.TimeString
	DurationMinutes int
	StartAt         time.Time
	EndAt           time.Time
}

// CalendarCell один день сетки месяца из 42 ячеек
type CalendarCell struct {
	Date           civil.Date
	InCurrentMonth bool
	Appointments   []Appointment // sorted by StartAt
}
