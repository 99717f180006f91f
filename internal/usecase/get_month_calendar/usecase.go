package get_month_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
)

// UseCase use case для построения месячного календаря приёмов
type UseCase struct {
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, settings SettingsProvider, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settings:        settings,
		logger:          logger,
	}
}

// Execute выполняет use case построения календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetMonthCalendar: business=%d, month=%04d-%02d", req.BusinessID, req.Year, int(req.Month))

	// 1. Сетка месяца
	if req.Month < time.January || req.Month > time.December || req.Year < 1 {
		uc.logger.Warn("GetMonthCalendar: invalid month %04d-%02d", req.Year, int(req.Month))
		return nil, fmt.Errorf("%w: month %04d-%02d", ErrInvalidInput, req.Year, int(req.Month))
	}
	grid, err := scheduling.BuildMonthGrid(req.Year, req.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Получаем часовой пояс бизнеса
	settings, err := uc.settings.GetBusinessSettings(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("GetMonthCalendar: failed to get settings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	offset := settings.Rules.TimezoneOffsetMinutes

	// 3. Приёмы, начинающиеся в пределах сетки
	from, to := scheduling.GridRange(grid, offset)
	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		BusinessID:       req.BusinessID,
		From:             &from,
		To:               &to,
		IncludeCancelled: req.IncludeCancelled,
	})
	if err != nil {
		uc.logger.Error("GetMonthCalendar: failed to list appointments for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 4. Раскладываем по дням
	scheduling.FillGrid(grid, scheduling.BucketAppointments(grid, appointments, offset))

	uc.logger.Info("GetMonthCalendar: %d appointments in grid for business=%d", len(appointments), req.BusinessID)

	return &Response{
		BusinessID:            req.BusinessID,
		Year:                  req.Year,
		Month:                 req.Month,
		TimezoneOffsetMinutes: offset,
		Cells:                 grid,
	}, nil
}
