package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек бизнеса
// Отсутствующая секция не изменяется
type UpdateSettingsRequest struct {
	Schedule []DayAvailability `json:"schedule,omitempty"`
	Rules    *BookingRules     `json:"rules,omitempty"`
}

// Общие модели

// Interval рабочий интервал дня
type Interval struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// DayAvailability рабочие часы одного дня недели
type DayAvailability struct {
	Day       string    `json:"day"` // mon, tue, ... sun
	IsOpen    bool      `json:"isOpen"`
	Interval1 *Interval `json:"interval1,omitempty"`
	Interval2 *Interval `json:"interval2,omitempty"`
}

// BookingRules правила бронирования
type BookingRules struct {
	BufferMinutes           int    `json:"bufferMinutes"`
	BookingWindowDays       int    `json:"bookingWindowDays"`
	MaxDailyAppointments    int    `json:"maxDailyAppointments"` // 0 = без ограничения
	CancellationWindowHours int    `json:"cancellationWindowHours"`
	DepositRequired         bool   `json:"depositRequired"`
	DepositAmountCents      int64  `json:"depositAmountCents"`
	NoShowPolicyText        string `json:"noShowPolicyText"`
	TimezoneOffsetMinutes   int    `json:"timezoneOffsetMinutes"`
}

// Response модели

// SettingsResponse настройки бизнеса
type SettingsResponse struct {
	BusinessID int64             `json:"businessId"`
	Schedule   []DayAvailability `json:"schedule"`
	Rules      BookingRules      `json:"rules"`
	// IsDefaultRules true, если бизнес ещё не сохранял свои правила
	IsDefaultRules bool       `json:"isDefaultRules"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// ToDomainSchedule собирает недельное расписание
// Закрытый день теряет интервалы, не упомянутые дни считаются выходными
func ToDomainSchedule(days []DayAvailability) (domain.WeeklySchedule, error) {
	result := make([]domain.DayAvailability, 0, len(days))

	for _, d := range days {
		weekday, err := domain.ParseWeekDay(d.Day)
		if err != nil {
			return domain.WeeklySchedule{}, err
		}

		day := domain.DayAvailability{Day: weekday, IsOpen: d.IsOpen}
		if !d.IsOpen {
			day.Close()
			result = append(result, day)
			continue
		}

		if day.Interval1, err = toDomainInterval(d.Interval1); err != nil {
			return domain.WeeklySchedule{}, fmt.Errorf("%s interval1: %w", weekday, err)
		}
		if day.Interval2, err = toDomainInterval(d.Interval2); err != nil {
			return domain.WeeklySchedule{}, fmt.Errorf("%s interval2: %w", weekday, err)
		}
		result = append(result, day)
	}

	return domain.NewWeeklySchedule(result)
}

func toDomainInterval(i *Interval) (*domain.TimeRange, error) {
	if i == nil {
		return nil, nil
	}
	start, err := types.NewTimeStringFromString(i.Start)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(i.End)
	if err != nil {
		return nil, err
	}
	return &domain.TimeRange{Start: start, End: end}, nil
}

// FromDomainSchedule конвертирует расписание в DTO (всегда семь дней)
func FromDomainSchedule(schedule domain.WeeklySchedule) []DayAvailability {
	days := make([]DayAvailability, 0, domain.DaysInWeek)
	for _, d := range schedule.Days() {
		days = append(days, DayAvailability{
			Day:       d.Day.String(),
			IsOpen:    d.IsOpen,
			Interval1: fromDomainInterval(d.Interval1),
			Interval2: fromDomainInterval(d.Interval2),
		})
	}
	return days
}

func fromDomainInterval(r *domain.TimeRange) *Interval {
	if r == nil {
		return nil
	}
	return &Interval{Start: r.Start.String(), End: r.End.String()}
}

// ToDomainRules конвертирует DTO правил в domain модель
func (r BookingRules) ToDomainRules(businessID int64) domain.BookingRules {
	return domain.BookingRules{
		BusinessID:              businessID,
		BufferMinutes:           r.BufferMinutes,
		BookingWindowDays:       r.BookingWindowDays,
		MaxDailyAppointments:    r.MaxDailyAppointments,
		CancellationWindowHours: r.CancellationWindowHours,
		DepositRequired:         r.DepositRequired,
		DepositAmountCents:      r.DepositAmountCents,
		NoShowPolicyText:        r.NoShowPolicyText,
		TimezoneOffsetMinutes:   r.TimezoneOffsetMinutes,
	}
}

// FromDomainRules конвертирует правила в DTO
func FromDomainRules(r domain.BookingRules) BookingRules {
	return BookingRules{
		BufferMinutes:           r.BufferMinutes,
		BookingWindowDays:       r.BookingWindowDays,
		MaxDailyAppointments:    r.MaxDailyAppointments,
		CancellationWindowHours: r.CancellationWindowHours,
		DepositRequired:         r.DepositRequired,
		DepositAmountCents:      r.DepositAmountCents,
		NoShowPolicyText:        r.NoShowPolicyText,
		TimezoneOffsetMinutes:   r.TimezoneOffsetMinutes,
	}
}
