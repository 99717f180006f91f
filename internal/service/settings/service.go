package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SchedulingService/internal/service/settings/models"
)

// Service сервис управления расписанием и правилами бронирования бизнеса
type Service struct {
	repo         SettingsRepository
	txManager    TransactionManager
	defaultRules domain.BookingRules
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
// defaultRules применяются к бизнесам, которые ещё не сохранили свои правила
func NewService(
	repo SettingsRepository,
	txManager TransactionManager,
	defaultRules domain.BookingRules,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		txManager:    txManager,
		defaultRules: defaultRules,
		logger:       logger,
	}
}

// GetBusinessSettings возвращает расписание и правила, которые использует валидатор слотов
func (s *Service) GetBusinessSettings(ctx context.Context, businessID int64) (*domain.BusinessSettings, error) {
	settings, _, err := s.load(ctx, businessID)
	return settings, err
}

// Get возвращает настройки бизнеса
func (s *Service) Get(ctx context.Context, businessID int64) (*models.SettingsResponse, error) {
	s.logger.Info("GetSettings: fetching settings for business=%d", businessID)

	settings, isDefault, err := s.load(ctx, businessID)
	if err != nil {
		return nil, err
	}

	return toResponse(settings, isDefault), nil
}

// Update проверяет и сохраняет расписание и/или правила в одной транзакции
func (s *Service) Update(ctx context.Context, businessID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating settings for business=%d (schedule=%t, rules=%t)",
		businessID, req.Schedule != nil, req.Rules != nil)

	if req.Schedule == nil && req.Rules == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var schedule *domain.WeeklySchedule
	if req.Schedule != nil {
		w, err := models.ToDomainSchedule(req.Schedule)
		if err != nil {
			s.logger.Warn("UpdateSettings: invalid schedule for business=%d: %v", businessID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		schedule = &w
	}

	var rules *domain.BookingRules
	if req.Rules != nil {
		r := req.Rules.ToDomainRules(businessID)
		if err := r.Validate(); err != nil {
			s.logger.Warn("UpdateSettings: invalid rules for business=%d: %v", businessID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		rules = &r
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if schedule != nil {
			if err := s.repo.SaveWeeklySchedule(txCtx, businessID, *schedule); err != nil {
				return fmt.Errorf("%w: save schedule: %v", ErrInternal, err)
			}
		}
		if rules != nil {
			if _, err := s.repo.SaveBookingRules(txCtx, rules); err != nil {
				return fmt.Errorf("%w: save rules: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateSettings: failed to save settings for business=%d: %v", businessID, err)
		return nil, err
	}

	s.logger.Info("UpdateSettings: successfully updated settings for business=%d", businessID)
	return s.Get(ctx, businessID)
}

// load читает расписание и правила, подставляя правила по умолчанию
func (s *Service) load(ctx context.Context, businessID int64) (*domain.BusinessSettings, bool, error) {
	schedule, err := s.repo.GetWeeklySchedule(ctx, businessID)
	if err != nil {
		s.logger.Error("GetSettings: failed to get schedule for business=%d: %v", businessID, err)
		return nil, false, fmt.Errorf("%w: get schedule: %v", ErrInternal, err)
	}

	isDefault := false
	rules, err := s.repo.GetBookingRules(ctx, businessID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrRulesNotFound) {
			s.logger.Error("GetSettings: failed to get rules for business=%d: %v", businessID, err)
			return nil, false, fmt.Errorf("%w: get rules: %v", ErrInternal, err)
		}
		defaults := s.defaultRules
		defaults.BusinessID = businessID
		rules = &defaults
		isDefault = true
	}

	return &domain.BusinessSettings{
		BusinessID: businessID,
		Schedule:   schedule,
		Rules:      *rules,
	}, isDefault, nil
}

func toResponse(settings *domain.BusinessSettings, isDefault bool) *models.SettingsResponse {
	resp := &models.SettingsResponse{
		BusinessID:     settings.BusinessID,
		Schedule:       models.FromDomainSchedule(settings.Schedule),
		Rules:          models.FromDomainRules(settings.Rules),
		IsDefaultRules: isDefault,
	}
	if !isDefault && !settings.Rules.UpdatedAt.IsZero() {
		updatedAt := settings.Rules.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
