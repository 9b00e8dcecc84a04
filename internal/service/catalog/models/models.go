package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Actor           domain.Actor `json:"-"`
	BranchID        int64        `json:"branchId"`
	Name            string       `json:"name"`
	DurationMinutes int          `json:"durationMinutes"`
	Price           float64      `json:"price"`
}

// UpdateServiceRequest запрос на обновление услуги
// nil-поля означают "оставить как есть"
type UpdateServiceRequest struct {
	Actor           domain.Actor `json:"-"`
	Name            *string      `json:"name,omitempty"`
	DurationMinutes *int         `json:"durationMinutes,omitempty"`
	Price           *float64     `json:"price,omitempty"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	BranchID        int64     `json:"branchId"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		BranchID:        s.BranchID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	if services == nil {
		return &ServiceListResponse{Services: []ServiceResponse{}}
	}

	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, len(services)),
	}
	for i, svc := range services {
		if svcResp := FromDomainService(svc); svcResp != nil {
			resp.Services[i] = *svcResp
		}
	}
	return resp
}
