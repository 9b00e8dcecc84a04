package get_branch_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Параметр date — краткая форма периода "с 00:00 до 00:00 следующего дня"
func ToServiceRequest(
	actor domain.Actor,
	branchID int64,
	therapistIDStr string,
	roomIDStr string,
	customerIDStr string,
	statusStr string,
	dateStr string,
	fromStr string,
	toStr string,
	includeInactiveStr string,
) (*models.GetBranchBookingsRequest, error) {
	req := &models.GetBranchBookingsRequest{
		Actor:           actor,
		BranchID:        branchID,
		IncludeInactive: false, // По умолчанию только активные
	}

	if therapistIDStr != "" {
		therapistID, err := strconv.ParseInt(therapistIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid therapistId value: %w", err)
		}
		req.TherapistID = &therapistID
	}

	if roomIDStr != "" {
		roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid roomId value: %w", err)
		}
		req.RoomID = &roomID
	}

	if customerIDStr != "" {
		customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid customerId value: %w", err)
		}
		req.CustomerID = &customerID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date value: %w", err)
		}
		dayEnd := date.AddDate(0, 0, 1)
		req.From = &date
		req.To = &dayEnd
	}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.To = &to
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
