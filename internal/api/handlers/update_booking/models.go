package update_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	updateBooking "github.com/m04kA/SMC-SalonService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
// Отсутствующие поля не меняются
type UpdateBookingRequest struct {
	CustomerID  *int64  `json:"customerId,omitempty"`
	ServiceIDs  []int64 `json:"serviceIds,omitempty"`
	TherapistID *int64  `json:"therapistId,omitempty"`
	RoomID      *int64  `json:"roomId,omitempty"`
	StartTime   *string `json:"startTime,omitempty"` // RFC 3339
	Status      *string `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	BranchID        int64   `json:"branchId"`
	CustomerID      int64   `json:"customerId"`
	TherapistID     *int64  `json:"therapistId,omitempty"`
	RoomID          *int64  `json:"roomId,omitempty"`
	ServiceIDs      []int64 `json:"serviceIds"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	CreatedBy       int64   `json:"createdBy"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		Actor:       actor,
		BookingID:   bookingID,
		CustomerID:  r.CustomerID,
		ServiceIDs:  r.ServiceIDs,
		TherapistID: r.TherapistID,
		RoomID:      r.RoomID,
		Notes:       r.Notes,
	}

	if r.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		req.Status = &status
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		BranchID:        resp.BranchID,
		CustomerID:      resp.CustomerID,
		TherapistID:     resp.TherapistID,
		RoomID:          resp.RoomID,
		ServiceIDs:      resp.ServiceIDs,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CreatedBy:       resp.CreatedBy,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
