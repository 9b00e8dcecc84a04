package update_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActor       = "отсутствует идентичность вызывающего"
	msgNotFound           = "услуга не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные услуги"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// UpdateServiceRequest HTTP request model
// isActive отдельно от остальных полей: включение/выключение услуги
// в каталоге — самостоятельная операция
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`
}

// Handle PATCH /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /services/{id} - Missing actor identity")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Name != nil || req.DurationMinutes != nil || req.Price != nil {
		_, err := h.service.Update(r.Context(), serviceID, &models.UpdateServiceRequest{
			Actor:           actor,
			Name:            req.Name,
			DurationMinutes: req.DurationMinutes,
			Price:           req.Price,
		})
		if err != nil {
			h.respondServiceError(w, serviceID, actor.UserID, err)
			return
		}
	}

	if req.IsActive != nil {
		if err := h.service.SetActive(r.Context(), serviceID, *req.IsActive, actor); err != nil {
			h.respondServiceError(w, serviceID, actor.UserID, err)
			return
		}
	}

	result, err := h.service.GetByID(r.Context(), serviceID)
	if err != nil {
		h.respondServiceError(w, serviceID, actor.UserID, err)
		return
	}

	h.logger.Info("PATCH /services/{id} - Service updated successfully: service_id=%d, actor=%d",
		serviceID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, serviceID, actorID int64, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		h.logger.Warn("PATCH /services/{id} - Service not found: service_id=%d", serviceID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, catalog.ErrAccessDenied):
		h.logger.Warn("PATCH /services/{id} - Access denied: service_id=%d, actor=%d", serviceID, actorID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("PATCH /services/{id} - Invalid input: service_id=%d, error=%v", serviceID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("PATCH /services/{id} - Failed to update service: service_id=%d, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
	}
}
