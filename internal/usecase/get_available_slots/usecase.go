package get_available_slots

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	timeProvider    TimeProvider
	slotStepMinutes int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// slotStepMinutes - шаг перебора начал слотов, 0 означает шаг, равный длительности
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settings SettingsProvider,
	slotStepMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		slotStepMinutes: slotStepMinutes,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, date=%s, duration=%d",
		req.BusinessID, req.Date, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date, err := scheduling.ParseLocalDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q", req.Date)
		return nil, err
	}

	// 2. Получаем настройки бизнеса
	settings, err := uc.settings.GetBusinessSettings(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	response := &Response{
		BusinessID:            req.BusinessID,
		Date:                  date,
		DurationMinutes:       req.DurationMinutes,
		TimezoneOffsetMinutes: settings.Rules.TimezoneOffsetMinutes,
		Slots:                 []domain.AvailableSlot{},
	}

	// 3. Рабочие интервалы дня
	intervals := scheduling.OpenIntervalsFor(settings.Schedule, scheduling.WeekDayOfDate(date))
	if len(intervals) == 0 {
		uc.logger.Info("GetAvailableSlots: business=%d is closed on %s", req.BusinessID, date)
		return response, nil
	}

	// 4. Получаем приёмы дня с учётом буфера
	from, to := scheduling.NeighbourRange(date, settings.Rules)
	existing, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		BusinessID: req.BusinessID,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 5. Перебираем кандидатов и оставляем принятые валидатором
	candidates := generateCandidates(date, intervals, req.DurationMinutes, uc.slotStepMinutes)
	response.Slots = filterAvailable(candidates, req.DurationMinutes, settings, existing, uc.timeProvider.Now())

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for business=%d on %s",
		len(response.Slots), len(candidates), req.BusinessID, date)

	return response, nil
}

func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: business id must be positive", ErrInvalidInput)
	}
	if req.DurationMinutes < domain.MinAppointmentDurationMinutes || req.DurationMinutes > domain.MaxAppointmentDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinAppointmentDurationMinutes, domain.MaxAppointmentDurationMinutes)
	}
	return nil
}

func timeString(t civil.Time) types.TimeString {
	ts, _ := types.NewTimeStringFromMinutes(t.Hour*60 + t.Minute)
	return ts
}
