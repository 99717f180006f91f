package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/scheduling"
)

// UseCase use case для отмены приёма
type UseCase struct {
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settings:        settings,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отмены приёма
// Отмена позже окна отмены отклоняется с текстом политики неявки бизнеса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: id=%s, business=%d", req.AppointmentID, req.BusinessID)

	// 1. Получаем правила бизнеса
	settings, err := uc.settings.GetBusinessSettings(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("CancelAppointment: failed to get settings for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 2. Проверка и смена статуса в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем приём с блокировкой строки
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelAppointment: appointment id=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if appointment.BusinessID != req.BusinessID {
			uc.logger.Warn("CancelAppointment: appointment id=%s belongs to business=%d",
				req.AppointmentID, appointment.BusinessID)
			return ErrForbidden
		}

		// 2.2. Статус должен допускать отмену
		if !appointment.CanBeCancelled() {
			uc.logger.Warn("CancelAppointment: appointment id=%s has status %s", req.AppointmentID, appointment.Status)
			return fmt.Errorf("%w: status %s", ErrCannotCancel, appointment.Status)
		}

		// 2.3. Окно отмены
		if rejection := scheduling.CheckCancellation(*appointment, settings.Rules, now); rejection != nil {
			uc.logger.Warn("CancelAppointment: appointment id=%s starts at %s, cancellation window is %dh",
				req.AppointmentID, appointment.StartAt.UTC(), settings.Rules.CancellationWindowHours)
			return rejection.Err()
		}

		// 2.4. Отменяем, слот освобождается
		if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment.ID, domain.StatusCancelled); err != nil {
			uc.logger.Error("CancelAppointment: failed to update status id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		appointment.Status = domain.StatusCancelled
		appointment.UpdatedAt = now
		result = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelAppointment: appointment id=%s cancelled", req.AppointmentID)

	return &Response{
		Appointment:           *result,
		TimezoneOffsetMinutes: settings.Rules.TimezoneOffsetMinutes,
	}, nil
}
