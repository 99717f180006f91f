package get_month_calendar

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]domain.Appointment, error)
}

// SettingsProvider источник правил бизнеса (нужен часовой пояс)
type SettingsProvider interface {
	GetBusinessSettings(ctx context.Context, businessID int64) (*domain.BusinessSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
