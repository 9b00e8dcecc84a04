package record_revenue

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/revenue"
	"github.com/m04kA/SMC-SalonService/internal/service/revenue/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingActor        = "отсутствует идентичность вызывающего"
	msgForbidden           = "доступ запрещен"
	msgBookingNotFound     = "бронирование не найдено"
	msgBookingNotCompleted = "бронирование не завершено"
	msgAlreadyRecorded     = "выручка по бронированию уже записана"
	msgInvalidInput        = "некорректные данные запроса"
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

// RecordRevenueRequest HTTP request model
type RecordRevenueRequest struct {
	BookingID int64   `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Notes     *string `json:"notes,omitempty"`
}

// Handle POST /api/v1/revenue
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /revenue - Missing actor identity")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req RecordRevenueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /revenue - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Record(r.Context(), &models.RecordRevenueRequest{
		Actor:     actor,
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Notes:     req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, revenue.ErrBookingNotFound):
			h.logger.Warn("POST /revenue - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, revenue.ErrBookingNotCompleted):
			h.logger.Warn("POST /revenue - Booking not completed: booking_id=%d", req.BookingID)
			handlers.RespondBadRequest(w, msgBookingNotCompleted)

		case errors.Is(err, revenue.ErrAlreadyRecorded):
			h.logger.Warn("POST /revenue - Already recorded: booking_id=%d", req.BookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyRecorded)

		case errors.Is(err, revenue.ErrAccessDenied):
			h.logger.Warn("POST /revenue - Access denied: booking_id=%d, actor=%d", req.BookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, revenue.ErrInvalidInput):
			h.logger.Warn("POST /revenue - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /revenue - Failed to record revenue: booking_id=%d, error=%v",
				req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /revenue - Revenue recorded successfully: entry_id=%d, booking_id=%d, actor=%d",
		result.ID, req.BookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
