package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	policyRepo "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/infra/storage/policy"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/service/policy/models"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/ptr"
)

// Service сервис политик расписания салонов
type Service struct {
	policyRepo PolicyRepository
	txManager  TransactionManager
	defaults   domain.SchedulingPolicy
	logger     Logger
}

// NewService создает новый экземпляр сервиса политик
// defaults применяется, если у салона нет сохраненной политики
func NewService(policyRepo PolicyRepository, txManager TransactionManager, defaults domain.SchedulingPolicy, logger Logger) *Service {
	return &Service{
		policyRepo: policyRepo,
		txManager:  txManager,
		defaults:   defaults,
		logger:     logger,
	}
}

// GetEffectivePolicy возвращает действующую политику с учетом иерархии
// Приоритет: сотрудник > салон > значения из конфигурации сервиса
func (s *Service) GetEffectivePolicy(ctx context.Context, salonID string, resourceID *string) (domain.SchedulingPolicy, error) {
	p, err := s.policyRepo.GetWithHierarchy(ctx, salonID, resourceID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return s.defaultFor(salonID), nil
		}
		s.logger.Error("GetEffectivePolicy: repository error for salon=%s: %v", salonID, err)
		return domain.SchedulingPolicy{}, fmt.Errorf("%w: GetEffectivePolicy - repository error: %w", ErrInternal, err)
	}
	return *p, nil
}

// GetEffective возвращает действующую политику для API
// Публичный метод - используется календарем для построения сетки
func (s *Service) GetEffective(ctx context.Context, salonID string, resourceID *string) (*models.PolicyResponse, error) {
	s.logger.Info("GetEffective: fetching policy for salon=%s, resource=%q", salonID, ptr.Deref(resourceID, ""))

	p, err := s.GetEffectivePolicy(ctx, salonID, resourceID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetEffective: resolved policy for salon=%s (level: %s)", salonID, level(&p))
	return models.FromDomainPolicy(&p, level(&p)), nil
}

// List получает все сохраненные политики салона
func (s *Service) List(ctx context.Context, salonID string) (*models.PolicyListResponse, error) {
	s.logger.Info("List: fetching policies for salon=%s", salonID)

	policies, err := s.policyRepo.ListBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("List: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainPolicyList(policies), nil
}

// Upsert создает или обновляет политику салона (или сотрудника)
// Поддерживает частичное обновление: незаданные поля берутся из текущей политики
// того же уровня. Новая политика сотрудника наследует действующую политику салона,
// новая политика салона - значения по умолчанию
func (s *Service) Upsert(ctx context.Context, req *models.UpsertPolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Upsert: updating policy for salon=%s, resource=%q by user=%s",
		req.SalonID, ptr.Deref(req.ResourceID, ""), req.UserID)

	if req.SalonID == "" {
		return nil, fmt.Errorf("%w: salonId is required", ErrInvalidInput)
	}
	if req.ResourceID != nil && *req.ResourceID == "" {
		return nil, fmt.Errorf("%w: resourceId must not be empty", ErrInvalidInput)
	}

	var saved *domain.SchedulingPolicy

	// Чтение и запись в одной транзакции: параллельные первые upsert одного уровня
	// получают конфликт сериализации и повторяются как обновление
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем существующую политику того же уровня
		existing, err := s.policyRepo.GetBySalonAndResource(txCtx, req.SalonID, req.ResourceID)
		if err != nil && !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Error("Upsert: failed to check existing policy: %v", err)
			return fmt.Errorf("%w: failed to check existing policy: %w", ErrInternal, err)
		}

		// 2. Определяем базу и применяем изменения к копии
		target, err := s.upsertBase(txCtx, req, existing)
		if err != nil {
			return err
		}
		if err := req.ApplyTo(&target); err != nil {
			s.logger.Warn("Upsert: invalid request: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 3. Валидируем итоговую политику
		if err := scheduling.ValidatePolicy(target); err != nil {
			s.logger.Warn("Upsert: validation failed: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 4. Сохраняем
		if existing != nil {
			saved, err = s.policyRepo.Update(txCtx, existing.ID, &target)
		} else {
			saved, err = s.policyRepo.Create(txCtx, &target)
		}
		if err != nil {
			s.logger.Error("Upsert: repository error: %v", err)
			return fmt.Errorf("%w: Upsert - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Upsert: successfully saved policy id=%d for salon=%s", saved.ID, saved.SalonID)
	return models.FromDomainPolicy(saved, level(saved)), nil
}

// upsertBase возвращает политику, к которой применяется частичное обновление
func (s *Service) upsertBase(ctx context.Context, req *models.UpsertPolicyRequest, existing *domain.SchedulingPolicy) (domain.SchedulingPolicy, error) {
	if existing != nil {
		return *existing, nil
	}
	if req.ResourceID == nil {
		return s.defaultFor(req.SalonID), nil
	}

	// Сотрудник без своей политики: копируем действующую политику салона
	base, err := s.GetEffectivePolicy(ctx, req.SalonID, nil)
	if err != nil {
		return domain.SchedulingPolicy{}, err
	}
	base.ID = 0
	base.ResourceID = req.ResourceID
	base.DurationOptions = append([]int(nil), base.DurationOptions...)
	return base, nil
}

// Reset удаляет политику уровня (салон или сотрудник)
// После удаления действует политика уровнем выше
func (s *Service) Reset(ctx context.Context, salonID string, resourceID *string, userID string) error {
	s.logger.Info("Reset: removing policy for salon=%s, resource=%q by user=%s",
		salonID, ptr.Deref(resourceID, ""), userID)

	existing, err := s.policyRepo.GetBySalonAndResource(ctx, salonID, resourceID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Warn("Reset: no policy for salon=%s, resource=%q", salonID, ptr.Deref(resourceID, ""))
			return ErrPolicyNotFound
		}
		s.logger.Error("Reset: repository error: %v", err)
		return fmt.Errorf("%w: Reset - repository error: %w", ErrInternal, err)
	}

	if err := s.policyRepo.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return ErrPolicyNotFound
		}
		s.logger.Error("Reset: failed to delete policy id=%d: %v", existing.ID, err)
		return fmt.Errorf("%w: Reset - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Reset: successfully removed policy id=%d for salon=%s", existing.ID, salonID)
	return nil
}

func (s *Service) defaultFor(salonID string) domain.SchedulingPolicy {
	p := s.defaults
	p.ID = 0
	p.SalonID = salonID
	p.ResourceID = nil
	p.DurationOptions = append([]int(nil), s.defaults.DurationOptions...)
	return p
}

// level возвращает уровень политики для логирования и ответа
func level(p *domain.SchedulingPolicy) string {
	switch {
	case p.IsDefault():
		return models.LevelDefault
	case p.IsResourceSpecific():
		return models.LevelResource
	default:
		return models.LevelSalon
	}
}
