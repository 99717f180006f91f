package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// WeekDay индекс дня недели с понедельника: Monday = 0 ... Sunday = 6
type WeekDay int

const (
	Monday WeekDay = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek число значений WeekDay
const DaysInWeek = 7

var weekDayNames = [DaysInWeek]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// WeekDays все дни в фиксированном порядке с понедельника
var WeekDays = [DaysInWeek]WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid возвращает true для Monday..Sunday
func (d WeekDay) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// String возвращает короткое имя в нижнем регистре ("mon", "tue", ...)
func (d WeekDay) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("WeekDay(%d)", int(d))
	}
	return weekDayNames[d]
}

// ParseWeekDay разбирает короткое имя дня
func ParseWeekDay(s string) (WeekDay, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekDayNames {
		if name == s {
			return WeekDay(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekDay, s)
}

// WeekDayOf переводит time.Weekday (с воскресенья) в WeekDay (с понедельника)
func WeekDayOf(wd time.Weekday) WeekDay {
	return WeekDay((int(wd) + 6) % DaysInWeek)
}

// TimeRange интервал местного времени внутри одного дня, Start < End
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate проверяет обе границы и их порядок
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidTimeRange, err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidTimeRange, err)
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidTimeRange, r.Start, r.End)
	}
	return nil
}

// Covers проверяет, что [startMin, endMin] в минутах от полуночи лежит внутри интервала
func (r TimeRange) Covers(startMin, endMin int) bool {
	return r.Start.Minutes() <= startMin && endMin <= r.End.Minutes()
}

// Contains проверяет, что минута дня лежит в [Start, End)
func (r TimeRange) Contains(minute int) bool {
	return r.Start.Minutes() <= minute && minute < r.End.Minutes()
}

// DayAvailability часы работы в один день недели
type DayAvailability struct {
	Day       WeekDay
	IsOpen    bool
	Interval1 *TimeRange
	Interval2 *TimeRange
}

// ClosedDay возвращает нерабочий день
func ClosedDay(day WeekDay) DayAvailability {
	return DayAvailability{Day: day}
}

// Close помечает день нерабочим и очищает оба интервала
func (d *DayAvailability) Close() {
	d.IsOpen = false
	d.Interval1 = nil
	d.Interval2 = nil
}

// Intervals возвращает 0, 1 или 2 рабочих интервала по порядку
func (d DayAvailability) Intervals() []TimeRange {
	if !d.IsOpen || d.Interval1 == nil {
		return nil
	}
	if d.Interval2 == nil {
		return []TimeRange{*d.Interval1}
	}
	return []TimeRange{*d.Interval1, *d.Interval2}
}

// Validate проверяет согласованность флага закрытия и порядок интервалов
func (d DayAvailability) Validate() error {
	if !d.Day.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidWeekDay, int(d.Day))
	}
	if !d.IsOpen {
		if d.Interval1 != nil || d.Interval2 != nil {
			return fmt.Errorf("%w: %s is closed but has intervals", ErrInvalidDayAvailability, d.Day)
		}
		return nil
	}
	if d.Interval1 == nil {
		return fmt.Errorf("%w: %s is open without interval1", ErrInvalidDayAvailability, d.Day)
	}
	if err := d.Interval1.Validate(); err != nil {
		return fmt.Errorf("%w: %s interval1: %v", ErrInvalidDayAvailability, d.Day, err)
	}
	if d.Interval2 != nil {
		if err := d.Interval2.Validate(); err != nil {
			return fmt.Errorf("%w: %s interval2: %v", ErrInvalidDayAvailability, d.Day, err)
		}
		if !d.Interval2.Start.IsAfter(d.Interval1.End) {
			return fmt.Errorf("%w: %s interval2 must start after interval1 ends", ErrInvalidDayAvailability, d.Day)
		}
	}
	return nil
}

// WeeklySchedule ровно один DayAvailability на каждый день недели, индекс WeekDay
type WeeklySchedule [DaysInWeek]DayAvailability

// NewClosedWeek возвращает расписание, где все дни нерабочие
func NewClosedWeek() WeeklySchedule {
	var w WeeklySchedule
	for _, day := range WeekDays {
		w[day] = ClosedDay(day)
	}
	return w
}

// NewWeeklySchedule строит расписание из заданных дней.
// Незаданные дни нерабочие, повтор дня является ошибкой
func NewWeeklySchedule(days []DayAvailability) (WeeklySchedule, error) {
	w := NewClosedWeek()
	var seen [DaysInWeek]bool

	for _, d := range days {
		if err := d.Validate(); err != nil {
			return WeeklySchedule{}, err
		}
		if seen[d.Day] {
			return WeeklySchedule{}, fmt.Errorf("%w: %s", ErrDuplicateWeekDay, d.Day)
		}
		seen[d.Day] = true
		w[d.Day] = d
	}

	return w, nil
}

// Day возвращает часы работы дня недели
func (w WeeklySchedule) Day(day WeekDay) DayAvailability {
	if !day.IsValid() {
		return ClosedDay(day)
	}
	return w[day]
}

// Validate проверяет каждый день и что каждая позиция хранит свой день недели
func (w WeeklySchedule) Validate() error {
	for i, d := range w {
		if d.Day != WeekDay(i) {
			return fmt.Errorf("%w: slot %s holds %s", ErrInvalidDayAvailability, WeekDay(i), d.Day)
		}
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Days возвращает семь дней, начиная с понедельника
func (w WeeklySchedule) Days() []DayAvailability {
	return w[:]
}
