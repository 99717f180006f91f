package domain

import (
	"fmt"
	"time"
)

// BookingRules правила бизнеса, применяемые к каждой записи
type BookingRules struct {
	BusinessID              int64
	BufferMinutes           int
	BookingWindowDays       int
	MaxDailyAppointments    int // 0 = unlimited
	CancellationWindowHours int
	DepositRequired         bool
	DepositAmountCents      int64 // meaningful only if DepositRequired
	NoShowPolicyText        string
	TimezoneOffsetMinutes   int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// Validate проверяет инварианты правил
func (r BookingRules) Validate() error {
	if r.BufferMinutes < MinBufferMinutes || r.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: buffer_minutes must be in [%d, %d]", ErrInvalidBookingRules, MinBufferMinutes, MaxBufferMinutes)
	}
	if r.BookingWindowDays < 0 {
		return fmt.Errorf("%w: booking_window_days must be >= 0", ErrInvalidBookingRules)
	}
	if r.MaxDailyAppointments < 0 {
		return fmt.Errorf("%w: max_daily_appointments must be >= 0", ErrInvalidBookingRules)
	}
	if r.CancellationWindowHours < 0 {
		return fmt.Errorf("%w: cancellation_window_hours must be >= 0", ErrInvalidBookingRules)
	}
	if r.DepositAmountCents < 0 {
		return fmt.Errorf("%w: deposit_amount must be >= 0", ErrInvalidBookingRules)
	}
	if r.DepositRequired && r.DepositAmountCents <= 0 {
		return fmt.Errorf("%w: deposit_amount must be > 0 when a deposit is required", ErrInvalidBookingRules)
	}
	if r.TimezoneOffsetMinutes < MinTimezoneOffsetMinutes || r.TimezoneOffsetMinutes > MaxTimezoneOffsetMinutes {
		return fmt.Errorf("%w: timezone_offset_minutes must be in [%d, %d]", ErrInvalidBookingRules, MinTimezoneOffsetMinutes, MaxTimezoneOffsetMinutes)
	}
	if len(r.NoShowPolicyText) > MaxNoShowPolicyLength {
		return fmt.Errorf("%w: no_show_policy_text is too long", ErrInvalidBookingRules)
	}
	return nil
}

// HasDailyLimit возвращает true, если число приёмов в день ограничено
func (r BookingRules) HasDailyLimit() bool {
	return r.MaxDailyAppointments > 0
}

// Buffer возвращает обязательный промежуток вокруг каждого приёма
func (r BookingRules) Buffer() time.Duration {
	return time.Duration(r.BufferMinutes) * time.Minute
}

// CancellationWindow возвращает минимальный срок предупреждения об отмене
func (r BookingRules) CancellationWindow() time.Duration {
	return time.Duration(r.CancellationWindowHours) * time.Hour
}

// BusinessSettings все данные бизнеса, нужные для проверки слота
type BusinessSettings struct {
	BusinessID int64
	Schedule   WeeklySchedule
	Rules      BookingRules
}
