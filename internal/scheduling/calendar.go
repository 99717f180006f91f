package scheduling

import (
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BuildMonthGrid возвращает 42 последовательные ячейки, начиная с понедельника,
// на который приходится первое число месяца или который ему предшествует
func BuildMonthGrid(year int, month time.Month) ([]domain.CalendarCell, error) {
	first := civil.Date{Year: year, Month: month, Day: 1}
	if !first.IsValid() {
		return nil, fmt.Errorf("%w: %04d-%02d", ErrInvalidMonth, year, int(month))
	}

	start := first.AddDays(-int(WeekDayOfDate(first)))
	cells := make([]domain.CalendarCell, domain.CalendarGridSize)
	for i := range cells {
		d := start.AddDays(i)
		cells[i] = domain.CalendarCell{
			Date:           d,
			InCurrentMonth: d.Month == month && d.Year == year,
		}
	}
	return cells, nil
}

// GridRange возвращает абсолютный диапазон, покрываемый сеткой в местных днях бизнеса
func GridRange(grid []domain.CalendarCell, offsetMinutes int) (time.Time, time.Time) {
	if len(grid) == 0 {
		return time.Time{}, time.Time{}
	}
	conv := NewConverter(offsetMinutes)
	return conv.StartOfDay(grid[0].Date), conv.StartOfDay(grid[len(grid)-1].Date.AddDays(1))
}

// BucketAppointments группирует приёмы по местной дате начала.
// Ключи есть только у дат сетки, каждая группа отсортирована по StartAt
func BucketAppointments(grid []domain.CalendarCell, appointments []domain.Appointment, offsetMinutes int) map[civil.Date][]domain.Appointment {
	buckets := make(map[civil.Date][]domain.Appointment)
	if len(grid) == 0 {
		return buckets
	}

	conv := NewConverter(offsetMinutes)
	first, last := grid[0].Date, grid[len(grid)-1].Date

	for _, a := range appointments {
		d := conv.LocalDate(a.StartAt)
		if d.Before(first) || d.After(last) {
			continue
		}
		buckets[d] = append(buckets[d], a)
	}

	for d := range buckets {
		sortByStart(buckets[d])
	}
	return buckets
}

// FillGrid раскладывает сгруппированные приёмы по ячейкам
func FillGrid(grid []domain.CalendarCell, buckets map[civil.Date][]domain.Appointment) {
	for i := range grid {
		grid[i].Appointments = buckets[grid[i].Date]
	}
}

func sortByStart(appointments []domain.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].StartAt.Before(appointments[j].StartAt)
	})
}
