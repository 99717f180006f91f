package get_month_calendar

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса месячного календаря
type Request struct {
	BusinessID       int64
	Year             int
	Month            time.Month
	IncludeCancelled bool // Показывать отменённые приёмы
}

// Response модель ответа: 42 дня, начиная с понедельника
type Response struct {
	BusinessID            int64
	Year                  int
	Month                 time.Month
	TimezoneOffsetMinutes int
	Cells                 []domain.CalendarCell
}
