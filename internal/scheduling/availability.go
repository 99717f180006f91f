package scheduling

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// WeekDayOfDate возвращает день недели календарной даты (неделя начинается с понедельника)
func WeekDayOfDate(d civil.Date) domain.WeekDay {
	return domain.WeekDayOf(d.In(time.UTC).Weekday())
}

// OpenIntervalsFor возвращает от 0 до 2 рабочих интервалов дня недели
func OpenIntervalsFor(schedule domain.WeeklySchedule, day domain.WeekDay) []domain.TimeRange {
	return schedule.Day(day).Intervals()
}

// IsOpenAt проверяет, работает ли бизнес в указанный момент.
// Начало интервала включается, конец нет
func IsOpenAt(schedule domain.WeeklySchedule, instant time.Time, offsetMinutes int) bool {
	local := NewConverter(offsetMinutes).ToLocal(instant)
	minute := minuteOfDay(local.Time)
	for _, interval := range OpenIntervalsFor(schedule, WeekDayOfDate(local.Date)) {
		if interval.Contains(minute) {
			return true
		}
	}
	return false
}

// fitsSingleInterval проверяет, что [start, end) по местному времени целиком лежит
// в одном рабочем интервале дня начала. Диапазон через местную полночь не подходит никогда
func fitsSingleInterval(schedule domain.WeeklySchedule, start, end civil.DateTime) bool {
	if start.Date != end.Date {
		return false
	}
	startMin := minuteOfDay(start.Time)
	endMin := minuteOfDay(end.Time)
	if end.Time.Second > 0 || end.Time.Nanosecond > 0 {
		endMin++
	}
	for _, interval := range OpenIntervalsFor(schedule, WeekDayOfDate(start.Date)) {
		if interval.Covers(startMin, endMin) {
			return true
		}
	}
	return false
}
