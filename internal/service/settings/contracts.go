package settings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SettingsRepository хранилище расписания и правил (репозиторий или кеш поверх него)
type SettingsRepository interface {
	GetWeeklySchedule(ctx context.Context, businessID int64) (domain.WeeklySchedule, error)
	SaveWeeklySchedule(ctx context.Context, businessID int64, schedule domain.WeeklySchedule) error
	GetBookingRules(ctx context.Context, businessID int64) (*domain.BookingRules, error)
	SaveBookingRules(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
