package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг филиала
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Create создает новую услугу в каталоге филиала
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q for branch=%d by actor=%d", req.Name, req.BranchID, req.Actor.UserID)

	if !req.Actor.CanManageBranch(req.BranchID) {
		s.logger.Warn("Create: access denied for actor=%d to branch=%d", req.Actor.UserID, req.BranchID)
		return nil, ErrAccessDenied
	}

	if err := validateServiceFields(req.Name, req.DurationMinutes, req.Price); err != nil {
		s.logger.Warn("Create: validation failed for branch=%d: %v", req.BranchID, err)
		return nil, err
	}
	if req.BranchID <= 0 {
		return nil, fmt.Errorf("%w: branch_id must be positive", ErrInvalidInput)
	}

	created, err := s.serviceRepo.Create(ctx, &domain.Service{
		BranchID:        req.BranchID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	})
	if err != nil {
		s.logger.Error("Create: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d for branch=%d", created.ID, req.BranchID)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// ListByBranch получает каталог услуг филиала
// activeOnly=true скрывает выключенные услуги (публичный каталог)
func (s *Service) ListByBranch(ctx context.Context, branchID int64, activeOnly bool) (*models.ServiceListResponse, error) {
	s.logger.Info("ListByBranch: fetching services for branch=%d, activeOnly=%t", branchID, activeOnly)

	if branchID <= 0 {
		return nil, fmt.Errorf("%w: branch_id must be positive", ErrInvalidInput)
	}

	services, err := s.serviceRepo.ListByBranch(ctx, branchID, activeOnly)
	if err != nil {
		s.logger.Error("ListByBranch: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: ListByBranch - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByBranch: successfully fetched %d services for branch=%d", len(services), branchID)
	return models.FromDomainServiceList(services), nil
}

// Update обновляет поля услуги
// Изменение длительности не трогает существующие бронирования:
// их end_time зафиксирован на момент создания/переноса
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d by actor=%d", id, req.Actor.UserID)

	existing, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if !req.Actor.CanManageBranch(existing.BranchID) {
		s.logger.Warn("Update: access denied for actor=%d to service id=%d", req.Actor.UserID, id)
		return nil, ErrAccessDenied
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.DurationMinutes != nil {
		existing.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}

	if err := validateServiceFields(existing.Name, existing.DurationMinutes, existing.Price); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, id, existing); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to re-read service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// SetActive включает или выключает услугу в каталоге
// Выключенная услуга не участвует в новых бронированиях,
// существующие бронирования с ней остаются без изменений
func (s *Service) SetActive(ctx context.Context, id int64, active bool, actor domain.Actor) error {
	s.logger.Info("SetActive: setting service id=%d active=%t by actor=%d", id, active, actor.UserID)

	existing, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("SetActive: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("SetActive: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	if !actor.CanManageBranch(existing.BranchID) {
		s.logger.Warn("SetActive: access denied for actor=%d to service id=%d", actor.UserID, id)
		return ErrAccessDenied
	}

	if err := s.serviceRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("SetActive: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetActive: successfully set service id=%d active=%t", id, active)
	return nil
}

// validateServiceFields проверяет бизнес-инварианты услуги
func validateServiceFields(name string, durationMinutes int, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if durationMinutes < domain.MinServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be at least %d minute", ErrInvalidInput, domain.MinServiceDurationMinutes)
	}

	if durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}

	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return nil
}
