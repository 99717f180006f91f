package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case для переноса приёма
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

// Execute выполняет use case переноса приёма
// Перенос подчиняется тому же окну, что и отмена; сам приём не считается
// конфликтом для своего нового времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%s, business=%d, new start=%s",
		req.AppointmentID, req.BusinessID, req.StartLocal)

	// 1. Валидация входных данных
	if req.DurationMinutes != nil &&
		(*req.DurationMinutes < domain.MinAppointmentDurationMinutes || *req.DurationMinutes > domain.MaxAppointmentDurationMinutes) {
		uc.logger.Warn("RescheduleAppointment: invalid duration %d", *req.DurationMinutes)
		return nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinAppointmentDurationMinutes, domain.MaxAppointmentDurationMinutes)
	}

	// 2. Разбор нового локального времени начала
	startLocal, err := scheduling.ParseLocalDateTime(req.StartLocal)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: invalid start %q", req.StartLocal)
		uc.recorder.ObserveBookingDecision(false, string(scheduling.KindInvalidTimeFormat))
		return nil, err
	}

	// 3. Попытки записи
	for attempt := 0; attempt <= uc.maxWriteRetries; attempt++ {
		result, err := uc.attempt(ctx, req, startLocal)
		if err == nil {
			uc.recorder.ObserveBookingDecision(true, "")
			uc.logger.Info("RescheduleAppointment: appointment id=%s moved to %s",
				req.AppointmentID, result.Appointment.StartAt.UTC())
			return result, nil
		}

		if kind, ok := scheduling.KindOf(err); ok {
			uc.recorder.ObserveBookingDecision(false, string(kind))
			uc.logger.Warn("RescheduleAppointment: rejected id=%s: %s", req.AppointmentID, kind)
			return nil, err
		}

		if !errors.Is(err, appointmentRepo.ErrSlotTaken) && !errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("RescheduleAppointment: failed id=%s: %v", req.AppointmentID, err)
			return nil, err
		}

		uc.logger.Warn("RescheduleAppointment: write conflict for id=%s (attempt %d/%d): %v",
			req.AppointmentID, attempt+1, uc.maxWriteRetries+1, err)
	}

	uc.recorder.ObserveBookingDecision(false, string(scheduling.KindPersistenceConflict))
	return nil, scheduling.NewRejectionError(scheduling.KindPersistenceConflict)
}

func (uc *UseCase) attempt(ctx context.Context, req *Request, startLocal civil.DateTime) (*Response, error) {
	// 3.1. Получаем настройки бизнеса
	settings, err := uc.settings.GetBusinessSettings(ctx, req.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.2. Загружаем приём с блокировкой строки
		current, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if current.BusinessID != req.BusinessID {
			return ErrForbidden
		}

		if !current.CanBeRescheduled() {
			return fmt.Errorf("%w: status %s", ErrCannotReschedule, current.Status)
		}

		// 3.3. Окно отмены действует и на перенос
		if rejection := scheduling.CheckCancellation(*current, settings.Rules, now); rejection != nil {
			return rejection.Err()
		}

		duration := int(current.Duration() / time.Minute)
		if req.DurationMinutes != nil {
			duration = *req.DurationMinutes
		}
		deposit := current.DepositConfirmed
		if req.DepositConfirmed != nil {
			deposit = *req.DepositConfirmed
		}

		// 3.4. Проверяем новое время без учёта самого приёма
		from, to := scheduling.NeighbourRange(startLocal.Date, settings.Rules)
		existing, err := uc.appointmentRepo.List(txCtx, domain.AppointmentsFilter{
			BusinessID: req.BusinessID,
			From:       &from,
			To:         &to,
			ExcludeID:  &current.ID,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
		}

		decision := scheduling.Validate(scheduling.Request{
			StartLocal:       startLocal,
			DurationMinutes:  duration,
			DepositConfirmed: deposit,
			ExcludeID:        current.ID,
		}, settings.Rules, settings.Schedule, existing, now)
		if !decision.Accepted {
			return decision.Err()
		}

		// 3.5. Сохраняем новое время
		updated, err := uc.appointmentRepo.Update(txCtx, current.ID, domain.AppointmentPatch{
			StartAt:          &decision.StartAt,
			EndAt:            &decision.EndAt,
			Status:           ptr.Ptr(domain.StatusRescheduled),
			DepositConfirmed: &deposit,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return err
			}
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		result = updated
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
