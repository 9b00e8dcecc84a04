package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
)

// NewCustomerRequest данные нового клиента
type NewCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BranchID    int64               `json:"branchId"`
	CustomerID  *int64              `json:"customerId,omitempty"`
	NewCustomer *NewCustomerRequest `json:"newCustomer,omitempty"`
	ServiceIDs  []int64             `json:"serviceIds"`
	TherapistID *int64              `json:"therapistId,omitempty"`
	RoomID      *int64              `json:"roomId,omitempty"`
	StartTime   string              `json:"startTime"` // RFC 3339, например "2026-03-10T10:00:00Z"
	Notes       *string             `json:"notes,omitempty"`
	Status      *string             `json:"status,omitempty"` // pending или confirmed
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
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		Actor:       actor,
		BranchID:    r.BranchID,
		CustomerID:  r.CustomerID,
		ServiceIDs:  r.ServiceIDs,
		TherapistID: r.TherapistID,
		RoomID:      r.RoomID,
		StartTime:   startTime,
		Notes:       r.Notes,
	}

	if r.NewCustomer != nil {
		req.NewCustomer = &createBooking.NewCustomer{
			Name:  r.NewCustomer.Name,
			Phone: r.NewCustomer.Phone,
		}
	}

	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		req.Status = &status
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
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
