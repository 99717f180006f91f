package scheduling

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Converter переводит местное время бизнеса в абсолютные моменты и обратно
// по единственному фиксированному смещению от UTC. Летнее время не учитывается
type Converter struct {
	offset time.Duration
	zone   *time.Location
}

// NewConverter создает конвертер для смещения к востоку от UTC в минутах
func NewConverter(offsetMinutes int) Converter {
	return Converter{
		offset: time.Duration(offsetMinutes) * time.Minute,
		zone:   time.FixedZone(zoneName(offsetMinutes), offsetMinutes*60),
	}
}

func zoneName(offsetMinutes int) string {
	sign := '+'
	if offsetMinutes < 0 {
		sign = '-'
		offsetMinutes = -offsetMinutes
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, offsetMinutes/60, offsetMinutes%60)
}

// Offset возвращает смещение от UTC
func (c Converter) Offset() time.Duration {
	return c.offset
}

// Location возвращает фиксированную зону со смещением бизнеса
func (c Converter) Location() *time.Location {
	if c.zone == nil {
		return time.UTC
	}
	return c.zone
}

// ToAbsolute возвращает момент в UTC для местных даты и времени
func (c Converter) ToAbsolute(local civil.DateTime) time.Time {
	return local.In(time.UTC).Add(-c.offset)
}

// ToLocal возвращает местные дату и время бизнеса для момента
func (c Converter) ToLocal(t time.Time) civil.DateTime {
	return civil.DateTimeOf(t.UTC().Add(c.offset))
}

// LocalDate возвращает местную календарную дату бизнеса для момента
func (c Converter) LocalDate(t time.Time) civil.Date {
	return c.ToLocal(t).Date
}

// StartOfDay возвращает момент местной полуночи даты
func (c Converter) StartOfDay(d civil.Date) time.Time {
	return c.ToAbsolute(civil.DateTime{Date: d})
}

// DayRange возвращает [местная полночь d, местная полночь следующего дня)
func (c Converter) DayRange(d civil.Date) (time.Time, time.Time) {
	return c.StartOfDay(d), c.StartOfDay(d.AddDays(1))
}

// ParseLocalDateTime строго разбирает "YYYY-MM-DDTHH:MM"
func ParseLocalDateTime(s string) (civil.DateTime, error) {
	if len(s) != len("2006-01-02T15:04") || s[10] != 'T' {
		return civil.DateTime{}, invalidFormat(s)
	}
	date, err := ParseLocalDate(s[:10])
	if err != nil {
		return civil.DateTime{}, invalidFormat(s)
	}
	if s[13] != ':' {
		return civil.DateTime{}, invalidFormat(s)
	}
	hour, ok := digits(s[11:13])
	if !ok || hour > 23 {
		return civil.DateTime{}, invalidFormat(s)
	}
	minute, ok := digits(s[14:16])
	if !ok || minute > 59 {
		return civil.DateTime{}, invalidFormat(s)
	}
	return civil.DateTime{Date: date, Time: civil.Time{Hour: hour, Minute: minute}}, nil
}

// ParseLocalDate строго разбирает "YYYY-MM-DD" и отклоняет несуществующие даты
func ParseLocalDate(s string) (civil.Date, error) {
	if len(s) != len("2006-01-02") || s[4] != '-' || s[7] != '-' {
		return civil.Date{}, invalidFormat(s)
	}
	year, ok := digits(s[0:4])
	if !ok {
		return civil.Date{}, invalidFormat(s)
	}
	month, ok := digits(s[5:7])
	if !ok {
		return civil.Date{}, invalidFormat(s)
	}
	day, ok := digits(s[8:10])
	if !ok {
		return civil.Date{}, invalidFormat(s)
	}
	d := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if !d.IsValid() {
		return civil.Date{}, invalidFormat(s)
	}
	return d, nil
}

// FormatLocalDateTime форматирует как "YYYY-MM-DDTHH:MM"
func FormatLocalDateTime(dt civil.DateTime) string {
	return fmt.Sprintf("%sT%02d:%02d", dt.Date, dt.Time.Hour, dt.Time.Minute)
}

func invalidFormat(s string) error {
	return &RejectionError{
		Kind:    KindInvalidTimeFormat,
		Message: fmt.Sprintf("%s: %q", KindInvalidTimeFormat.Message(), s),
	}
}

func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, len(s) > 0
}

// minuteOfDay возвращает число минут от местной полуночи
func minuteOfDay(t civil.Time) int {
	return t.Hour*60 + t.Minute
}
