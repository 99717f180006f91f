package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case для создания приёма
type UseCase struct {
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	txManager       TransactionManager
	recorder        DecisionRecorder
	timeProvider    TimeProvider
	maxWriteRetries int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// maxWriteRetries - сколько раз повторить попытку после конфликта записи
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	recorder DecisionRecorder,
	maxWriteRetries int,
	logger Logger,
) *UseCase {
	if maxWriteRetries < 0 {
		maxWriteRetries = 0
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settings:        settings,
		txManager:       txManager,
		recorder:        recorder,
		timeProvider:    &RealTimeProvider{},
		maxWriteRetries: maxWriteRetries,
		logger:          logger,
	}
}

// Execute выполняет use case создания приёма
// Проверка и запись идут в одной сериализуемой транзакции; при конфликте
// записи попытка повторяется на свежих данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: business=%d, start=%s, duration=%d, service=%q",
		req.BusinessID, req.StartLocal, req.DurationMinutes, req.ServiceName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Разбор локального времени начала
	startLocal, err := scheduling.ParseLocalDateTime(req.StartLocal)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid start %q", req.StartLocal)
		uc.recorder.ObserveBookingDecision(false, string(scheduling.KindInvalidTimeFormat))
		return nil, err
	}

	// 3. Попытки записи
	for attempt := 0; attempt <= uc.maxWriteRetries; attempt++ {
		result, err := uc.attempt(ctx, req, startLocal)
		if err == nil {
			uc.recorder.ObserveBookingDecision(true, "")
			uc.logger.Info("CreateAppointment: created appointment id=%s for business=%d at %s",
				result.Appointment.ID, req.BusinessID, result.Appointment.StartAt.UTC())
			return result, nil
		}

		if kind, ok := scheduling.KindOf(err); ok {
			uc.recorder.ObserveBookingDecision(false, string(kind))
			uc.logger.Warn("CreateAppointment: rejected for business=%d at %s: %s", req.BusinessID, req.StartLocal, kind)
			return nil, err
		}

		if !isWriteConflict(err) {
			uc.logger.Error("CreateAppointment: failed for business=%d: %v", req.BusinessID, err)
			return nil, err
		}

		uc.logger.Warn("CreateAppointment: write conflict for business=%d (attempt %d/%d): %v",
			req.BusinessID, attempt+1, uc.maxWriteRetries+1, err)
	}

	uc.recorder.ObserveBookingDecision(false, string(scheduling.KindPersistenceConflict))
	return nil, scheduling.NewRejectionError(scheduling.KindPersistenceConflict)
}

// attempt выполняет одну попытку: свежие настройки, проверка и запись в транзакции
func (uc *UseCase) attempt(ctx context.Context, req *Request, startLocal civil.DateTime) (*Response, error) {
	// 3.1. Получаем настройки бизнеса
	settings, err := uc.settings.GetBusinessSettings(ctx, req.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 3.2. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Приёмы, способные помешать: весь локальный день плюс буфер с обеих сторон
		from, to := scheduling.NeighbourRange(startLocal.Date, settings.Rules)
		existing, err := uc.appointmentRepo.List(txCtx, domain.AppointmentsFilter{
			BusinessID: req.BusinessID,
			From:       &from,
			To:         &to,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
		}

		decision := scheduling.Validate(scheduling.Request{
			StartLocal:       startLocal,
			DurationMinutes:  req.DurationMinutes,
			DepositConfirmed: req.DepositConfirmed,
		}, settings.Rules, settings.Schedule, existing, now)
		if !decision.Accepted {
			return decision.Err()
		}

		status := domain.StatusConfirmed
		if req.Pending {
			status = domain.StatusPending
		}

		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			BusinessID:       req.BusinessID,
			CustomerName:     strings.TrimSpace(req.CustomerName),
			CustomerPhone:    strings.TrimSpace(req.CustomerPhone),
			ServiceName:      strings.TrimSpace(req.ServiceName),
			StartAt:          decision.StartAt,
			EndAt:            decision.EndAt,
			Status:           status,
			Notes:            req.Notes,
			DepositConfirmed: req.DepositConfirmed,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return err
			}
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		Appointment:           *result,
		TimezoneOffsetMinutes: settings.Rules.TimezoneOffsetMinutes,
	}, nil
}

// isWriteConflict ошибки, после которых попытку можно повторить
func isWriteConflict(err error) bool {
	return errors.Is(err, appointmentRepo.ErrSlotTaken) || errors.Is(err, txmanager.ErrSerialization)
}
