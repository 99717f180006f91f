package settings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Source постоянное хранилище настроек (settings.Repository)
type Source interface {
	GetWeeklySchedule(ctx context.Context, businessID int64) (domain.WeeklySchedule, error)
	SaveWeeklySchedule(ctx context.Context, businessID int64, schedule domain.WeeklySchedule) error
	GetBookingRules(ctx context.Context, businessID int64) (*domain.BookingRules, error)
	SaveBookingRules(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
