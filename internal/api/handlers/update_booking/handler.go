package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	updateBooking "github.com/m04kA/SMC-SalonService/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректный формат времени начала, ожидается RFC 3339"
	msgMissingActor         = "отсутствует идентичность вызывающего"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCustomerNotFound     = "клиент не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceInactive      = "услуга недоступна"
	msgTherapistNotFound    = "мастер не найден в филиале"
	msgTherapistUnavailable = "мастер занят в выбранное время"
	msgRoomUnavailable      = "кабинет занят в выбранное время"
	msgBookingConflict      = "конфликт бронирований, повторите попытку"
	msgCannotUpdate         = "бронирование нельзя изменить в текущем статусе"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing actor identity")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrTherapistUnavailable):
			h.logger.Warn("PATCH /bookings/{id} - Therapist unavailable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgTherapistUnavailable)

		case errors.Is(err, updateBooking.ErrRoomUnavailable):
			h.logger.Warn("PATCH /bookings/{id} - Room unavailable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgRoomUnavailable)

		case errors.Is(err, updateBooking.ErrBookingConflict):
			h.logger.Warn("PATCH /bookings/{id} - Booking conflict: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingConflict)

		case errors.Is(err, updateBooking.ErrCannotUpdate):
			h.logger.Warn("PATCH /bookings/{id} - Cannot update: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotUpdate)

		case errors.Is(err, updateBooking.ErrCustomerNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Customer not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, updateBooking.ErrServiceNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Service not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateBooking.ErrServiceInactive):
			h.logger.Warn("PATCH /bookings/{id} - Service inactive: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, updateBooking.ErrTherapistNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Therapist not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id} - Access denied: booking_id=%d, actor=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated successfully: booking_id=%d, actor=%d",
		bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
