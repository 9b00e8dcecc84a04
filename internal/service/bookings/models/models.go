package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Actor              domain.Actor `json:"-"`
	CancellationReason string       `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Actor  domain.Actor `json:"-"`
	Status string       `json:"status"`
}

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	Actor      domain.Actor `json:"-"`
	CustomerID int64        `json:"customerId"`
	Status     *string      `json:"status,omitempty"`
}

// GetBranchBookingsRequest запрос на получение бронирований филиала
type GetBranchBookingsRequest struct {
	Actor           domain.Actor `json:"-"`
	BranchID        int64        `json:"branchId"`
	TherapistID     *int64       `json:"therapistId,omitempty"` // Фильтр по мастеру (опционально)
	RoomID          *int64       `json:"roomId,omitempty"`      // Фильтр по кабинету (опционально)
	CustomerID      *int64       `json:"customerId,omitempty"`  // Фильтр по клиенту (опционально)
	From            *time.Time   `json:"from,omitempty"`        // Начало периода (опционально)
	To              *time.Time   `json:"to,omitempty"`          // Конец периода (опционально)
	Status          *string      `json:"status,omitempty"`      // Фильтр по статусу (опционально)
	IncludeInactive bool         `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBranchBookingsRequest) ToDomainFilter() (domain.BranchBookingsFilter, error) {
	filter := domain.BranchBookingsFilter{
		BranchID:        r.BranchID,
		TherapistID:     r.TherapistID,
		RoomID:          r.RoomID,
		CustomerID:      r.CustomerID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64     `json:"id"`
	BranchID        int64     `json:"branchId"`
	CustomerID      int64     `json:"customerId"`
	TherapistID     *int64    `json:"therapistId,omitempty"`
	RoomID          *int64    `json:"roomId,omitempty"`
	ServiceIDs      []int64   `json:"serviceIds"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	CreatedBy       int64     `json:"createdBy"`
	Notes           *string   `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BranchID:           b.BranchID,
		CustomerID:         b.CustomerID,
		TherapistID:        b.TherapistID,
		RoomID:             b.RoomID,
		ServiceIDs:         b.ServiceIDs,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		DurationMinutes:    int(b.EndTime.Sub(b.StartTime) / time.Minute),
		Status:             string(b.Status),
		CreatedBy:          b.CreatedBy,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
