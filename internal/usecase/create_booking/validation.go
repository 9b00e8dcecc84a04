package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: actor userID must be positive", ErrInvalidInput)
	}

	if !req.Actor.CanCreateBookings() {
		return ErrAccessDenied
	}

	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}

	if !req.Actor.CanManageBranch(req.BranchID) {
		return ErrAccessDenied
	}

	// Создание требует хотя бы одну услугу
	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: too many services, max %d", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	if err := validateServiceIDs(req.ServiceIDs); err != nil {
		return err
	}

	// Клиент: либо существующий ID, либо данные нового
	if req.CustomerID == nil && req.NewCustomer == nil {
		return ErrCustomerRequired
	}
	if req.CustomerID != nil && *req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if req.NewCustomer != nil {
		if req.NewCustomer.Name == "" || req.NewCustomer.Phone == "" {
			return fmt.Errorf("%w: new customer name and phone are required", ErrInvalidInput)
		}
		if len(req.NewCustomer.Name) > domain.MaxCustomerNameLength {
			return fmt.Errorf("%w: customer name too long", ErrInvalidInput)
		}
		if len(req.NewCustomer.Phone) > domain.MaxPhoneLength {
			return fmt.Errorf("%w: phone too long", ErrInvalidInput)
		}
	}

	if req.TherapistID != nil && *req.TherapistID <= 0 {
		return fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}
	if req.RoomID != nil && *req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long, max %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Status != nil && *req.Status != domain.StatusPending && *req.Status != domain.StatusConfirmed {
		return fmt.Errorf("%w: initial status must be pending or confirmed", ErrInvalidInput)
	}

	return nil
}

// validateServiceIDs проверяет, что все ID положительны и не повторяются
// Дубликаты запрещены: каждая услуга входит в бронирование один раз
func validateServiceIDs(ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate serviceID %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
