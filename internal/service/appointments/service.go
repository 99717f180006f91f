package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// Service сервис чтения и управления статусами приёмов
type Service struct {
	repo      AppointmentRepository
	settings  SettingsProvider
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса приёмов
func NewService(
	repo AppointmentRepository,
	settings SettingsProvider,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		repo:      repo,
		settings:  settings,
		txManager: txManager,
		logger:    logger,
	}
}

// GetByID возвращает приём бизнеса по ID
func (s *Service) GetByID(ctx context.Context, businessID int64, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetAppointment: fetching appointment id=%s for business=%d", id, businessID)

	appointment, err := s.getOwned(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	offset, err := s.offsetOf(ctx, businessID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment, offset), nil
}

// List возвращает приёмы бизнеса за период
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListAppointments: fetching appointments for business=%d", req.BusinessID)

	offset, err := s.offsetOf(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter(offset)
	if err != nil {
		s.logger.Warn("ListAppointments: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListAppointments: failed to list appointments for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAppointments: found %d appointments for business=%d", len(list), req.BusinessID)
	return models.FromDomainAppointments(list, offset), nil
}

// UpdateStatus переводит приём в completed, no_show или confirmed
// Отмена и перенос выполняются отдельными сценариями
func (s *Service) UpdateStatus(ctx context.Context, businessID int64, id uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateAppointmentStatus: id=%s, business=%d, status=%s", id, businessID, req.Status)

	status, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateAppointmentStatus: invalid status %q", req.Status)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.getOwned(txCtx, businessID, id)
		if err != nil {
			return err
		}

		if !appointment.CanTransitionTo(status) {
			s.logger.Warn("UpdateAppointmentStatus: transition %s -> %s is not allowed for id=%s",
				appointment.Status, status, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, appointment.Status, status)
		}

		if err := s.repo.UpdateStatus(txCtx, id, status); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("UpdateAppointmentStatus: appointment id=%s is now %s", id, status)
	return nil
}

// Delete удаляет приём бизнеса
func (s *Service) Delete(ctx context.Context, businessID int64, id uuid.UUID) error {
	s.logger.Info("DeleteAppointment: id=%s, business=%d", id, businessID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getOwned(txCtx, businessID, id); err != nil {
			return err
		}

		if err := s.repo.Delete(txCtx, id); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("DeleteAppointment: failed to delete id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("DeleteAppointment: appointment id=%s deleted", id)
		return nil
	})
}

// getOwned загружает приём и проверяет, что он принадлежит бизнесу
func (s *Service) getOwned(ctx context.Context, businessID int64, id uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Appointments: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Appointments: failed to get appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appointment.BusinessID != businessID {
		s.logger.Warn("Appointments: appointment id=%s belongs to business=%d, requested by business=%d",
			id, appointment.BusinessID, businessID)
		return nil, ErrAccessDenied
	}

	return appointment, nil
}

func (s *Service) offsetOf(ctx context.Context, businessID int64) (int, error) {
	settings, err := s.settings.GetBusinessSettings(ctx, businessID)
	if err != nil {
		s.logger.Error("Appointments: failed to get settings for business=%d: %v", businessID, err)
		return 0, fmt.Errorf("%w: GetBusinessSettings: %v", ErrInternal, err)
	}
	return settings.Rules.TimezoneOffsetMinutes, nil
}
