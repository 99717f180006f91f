package get_business_settings

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
)

type SettingsService interface {
	Get(ctx context.Context, businessID int64) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
