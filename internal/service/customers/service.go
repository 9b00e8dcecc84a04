package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-SalonService/internal/service/customers/models"
)

// Service сервис для работы с клиентами
type Service struct {
	customerRepo CustomerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(customerRepo CustomerRepository, logger Logger) *Service {
	return &Service{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// ResolveOrCreate находит клиента по телефону или создает нового
// Телефон — ключ уникальности. Поиск видит и деактивированных клиентов:
// вернувшийся клиент реактивируется с новым именем, а не дублируется
func (s *Service) ResolveOrCreate(ctx context.Context, req *models.ResolveCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("ResolveOrCreate: resolving customer by phone=%s", req.Phone)

	if err := validateCustomerFields(req.Name, req.Phone); err != nil {
		s.logger.Warn("ResolveOrCreate: validation failed: %v", err)
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)

	existing, err := s.customerRepo.GetByPhone(ctx, phone)
	if err == nil {
		if !existing.IsActive {
			if err := s.customerRepo.Reactivate(ctx, existing.ID, name); err != nil {
				s.logger.Error("ResolveOrCreate: failed to reactivate customer id=%d: %v", existing.ID, err)
				return nil, fmt.Errorf("%w: ResolveOrCreate - failed to reactivate: %v", ErrInternal, err)
			}
			s.logger.Info("ResolveOrCreate: reactivated customer id=%d", existing.ID)
			reactivated, err := s.customerRepo.GetByID(ctx, existing.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: ResolveOrCreate - failed to re-read customer: %v", ErrInternal, err)
			}
			return models.FromDomainCustomer(reactivated), nil
		}
		s.logger.Info("ResolveOrCreate: found existing customer id=%d", existing.ID)
		return models.FromDomainCustomer(existing), nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		s.logger.Error("ResolveOrCreate: repository error for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: ResolveOrCreate - repository error: %v", ErrInternal, err)
	}

	created, err := s.customerRepo.Create(ctx, &domain.Customer{
		Name:     name,
		Phone:    phone,
		IsActive: true,
	})
	if err != nil {
		if errors.Is(err, customerRepo.ErrDuplicatePhone) {
			// Гонка с параллельным созданием: клиент уже есть, перечитываем
			s.logger.Warn("ResolveOrCreate: lost create race for phone=%s, re-reading", phone)
			existing, rereadErr := s.customerRepo.GetByPhone(ctx, phone)
			if rereadErr != nil {
				return nil, fmt.Errorf("%w: ResolveOrCreate - re-read after duplicate: %v", ErrInternal, rereadErr)
			}
			return models.FromDomainCustomer(existing), nil
		}
		s.logger.Error("ResolveOrCreate: failed to create customer: %v", err)
		return nil, fmt.Errorf("%w: ResolveOrCreate - failed to create: %v", ErrInternal, err)
	}

	s.logger.Info("ResolveOrCreate: created new customer id=%d", created.ID)
	return models.FromDomainCustomer(created), nil
}

// GetByID получает клиента по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.CustomerResponse, error) {
	s.logger.Info("GetByID: fetching customer id=%d", id)

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetByID: customer id=%d not found", id)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetByID: repository error for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCustomer(customer), nil
}

// Update обновляет имя клиента
// Телефон не меняется: это ключ уникальности
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("Update: updating customer id=%d", id)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return nil, fmt.Errorf("%w: name too long (max %d)", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if err := s.customerRepo.Update(ctx, id, name); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Update: customer id=%d not found", id)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("Update: repository error for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - failed to re-read customer: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated customer id=%d", id)
	return models.FromDomainCustomer(updated), nil
}

// Deactivate мягко удаляет клиента
// Запись остается: история бронирований ссылается на клиента,
// а повторный визит реактивирует его по телефону
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating customer id=%d", id)

	if err := s.customerRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Deactivate: customer id=%d not found", id)
			return ErrCustomerNotFound
		}
		s.logger.Error("Deactivate: repository error for customer id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated customer id=%d", id)
	return nil
}

// validateCustomerFields проверяет поля клиента
func validateCustomerFields(name, phone string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: name too long (max %d)", ErrInvalidInput, domain.MaxCustomerNameLength)
	}
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone too long (max %d)", ErrInvalidInput, domain.MaxPhoneLength)
	}
	return nil
}
