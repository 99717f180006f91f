package domain

import "errors"

var (
	ErrInvalidWeekDay         = errors.New("domain: invalid weekday")
	ErrInvalidTimeRange       = errors.New("domain: invalid time range")
	ErrInvalidDayAvailability = errors.New("domain: invalid day availability")
	ErrDuplicateWeekDay       = errors.New("domain: weekday configured more than once")
	ErrInvalidBookingRules    = errors.New("domain: invalid booking rules")
)
