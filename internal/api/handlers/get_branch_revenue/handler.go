package get_branch_revenue

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/revenue"
	"github.com/m04kA/SMC-SalonService/internal/service/revenue/models"
)

const (
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidQueryParams = "некорректные параметры запроса"
	msgMissingActor       = "отсутствует идентичность вызывающего"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service RevenueService
	logger  Logger
}

func NewHandler(service RevenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/revenue?from=...&to=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/revenue - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /branches/{id}/revenue - Missing actor identity")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	req := &models.GetBranchRevenueRequest{
		Actor:    actor,
		BranchID: branchID,
	}

	query := r.URL.Query()
	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.logger.Warn("GET /branches/{id}/revenue - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQueryParams)
			return
		}
		req.From = &from
	}
	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.logger.Warn("GET /branches/{id}/revenue - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQueryParams)
			return
		}
		req.To = &to
	}

	result, err := h.service.GetBranchRevenue(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, revenue.ErrAccessDenied):
			h.logger.Warn("GET /branches/{id}/revenue - Access denied: branch_id=%d, actor=%d",
				branchID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, revenue.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/revenue - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidQueryParams)

		default:
			h.logger.Error("GET /branches/{id}/revenue - Failed to get revenue: branch_id=%d, error=%v",
				branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/revenue - Retrieved %d entries: branch_id=%d, total=%.2f",
		len(result.Entries), branchID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
