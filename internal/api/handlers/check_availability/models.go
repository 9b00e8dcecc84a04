package check_availability

import (
	"time"

	checkAvailability "github.com/m04kA/SMC-SalonService/internal/usecase/check_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	TherapistID      *int64  `json:"therapistId,omitempty"`
	RoomID           *int64  `json:"roomId,omitempty"`
	ServiceIDs       []int64 `json:"serviceIds"`
	StartTime        string  `json:"startTime"` // RFC 3339
	ExcludeBookingID *int64  `json:"excludeBookingId,omitempty"`
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Available            bool   `json:"available"`
	StartTime            string `json:"startTime"`
	EndTime              string `json:"endTime"`
	DurationMinutes      int    `json:"durationMinutes"`
	TherapistUnavailable bool   `json:"therapistUnavailable,omitempty"`
	RoomUnavailable      bool   `json:"roomUnavailable,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest(branchID int64) (*checkAvailability.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		BranchID:         branchID,
		TherapistID:      r.TherapistID,
		RoomID:           r.RoomID,
		ServiceIDs:       r.ServiceIDs,
		StartTime:        startTime,
		ExcludeBookingID: r.ExcludeBookingID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	return &CheckAvailabilityResponse{
		Available:            resp.Available,
		StartTime:            resp.StartTime.Format(time.RFC3339),
		EndTime:              resp.EndTime.Format(time.RFC3339),
		DurationMinutes:      resp.DurationMinutes,
		TherapistUnavailable: resp.TherapistUnavailable,
		RoomUnavailable:      resp.RoomUnavailable,
	}
}
