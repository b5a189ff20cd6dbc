package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	appointmentRepo "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/storage/appointment"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/appointments/models"
)

// Service сервис для чтения записей и смены их статуса
// Изменение времени записи выполняется только через use cases с валидацией расписания
type Service struct {
	appointmentRepo AppointmentRepository
	publisher       EventPublisher
	txManager       TransactionManager
	logger          Logger
	now             func() time.Time
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		publisher:       publisher,
		txManager:       txManager,
		logger:          logger,
		now:             time.Now,
	}
}

// GetByID получает запись салона по ID
func (s *Service) GetByID(ctx context.Context, salonID, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for salon=%s", id, salonID)

	a, err := s.appointmentRepo.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	return models.FromDomainAppointment(a), nil
}

// List получает записи салона с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for salon=%s", req.SalonID)

	if req.From != nil && req.To != nil {
		if !req.From.Before(*req.To) {
			return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
		}
		if req.To.Sub(*req.From) > domain.MaxListRange {
			return nil, fmt.Errorf("%w: period must not exceed %d days", ErrInvalidInput, int(domain.MaxListRange/(24*time.Hour)))
		}
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments for salon=%s", len(list), req.SalonID)
	return models.FromDomainAppointmentList(list), nil
}

// Cancel отменяет запись
// Отмененная запись остается в истории и, в зависимости от политики, может продолжать занимать слот
func (s *Service) Cancel(ctx context.Context, salonID, id, userID string) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s", id, userID)

	var cancelled *domain.Appointment
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		a, err := s.appointmentRepo.GetByID(ctx, salonID, id)
		if err != nil {
			return s.mapRepoError("Cancel", id, err)
		}

		if !a.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", id, a.Status)
			return ErrCannotCancel
		}

		cancelled, err = s.appointmentRepo.UpdateStatus(ctx, salonID, id, domain.StatusCancelled)
		if err != nil {
			return s.mapRepoError("Cancel", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventAppointmentCancelled, cancelled)
	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return models.FromDomainAppointment(cancelled), nil
}

// UpdateStatus обновляет статус записи
// Допустимые переходы: pending -> confirmed|cancelled, confirmed -> completed|cancelled
func (s *Service) UpdateStatus(ctx context.Context, salonID, id string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s by user=%s", id, req.Status, req.UserID)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var updated *domain.Appointment
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		a, err := s.appointmentRepo.GetByID(ctx, salonID, id)
		if err != nil {
			return s.mapRepoError("UpdateStatus", id, err)
		}

		if !a.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%s", a.Status, newStatus, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, newStatus)
		}

		updated, err = s.appointmentRepo.UpdateStatus(ctx, salonID, id, newStatus)
		if err != nil {
			return s.mapRepoError("UpdateStatus", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	eventType := domain.EventAppointmentStatusChanged
	if newStatus == domain.StatusCancelled {
		eventType = domain.EventAppointmentCancelled
	}
	s.publish(ctx, eventType, updated)

	s.logger.Info("UpdateStatus: successfully updated appointment id=%s to status=%s", id, newStatus)
	return models.FromDomainAppointment(updated), nil
}

// publish отправляет событие; ошибка публикации не отменяет уже зафиксированное изменение
func (s *Service) publish(ctx context.Context, eventType domain.EventType, a *domain.Appointment) {
	event := domain.NewAppointmentEvent(uuid.NewString(), eventType, a, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish: failed to publish %s for appointment id=%s: %v", eventType, a.ID, err)
	}
}

func (s *Service) mapRepoError(op, id string, err error) error {
	if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
		s.logger.Warn("%s: appointment id=%s not found", op, id)
		return ErrAppointmentNotFound
	}
	s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}
