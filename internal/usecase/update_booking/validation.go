package update_booking

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

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	// nil = оставить текущий список; явный пустой список недопустим
	if req.ServiceIDs != nil {
		if len(req.ServiceIDs) == 0 {
			return fmt.Errorf("%w: serviceIDs must not be empty", ErrInvalidInput)
		}
		if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
			return fmt.Errorf("%w: too many services, max %d", ErrInvalidInput, domain.MaxServicesPerBooking)
		}
		if err := validateServiceIDs(req.ServiceIDs); err != nil {
			return err
		}
	}

	if req.CustomerID != nil && *req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if req.TherapistID != nil && *req.TherapistID <= 0 {
		return fmt.Errorf("%w: therapistID must be positive", ErrInvalidInput)
	}
	if req.RoomID != nil && *req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.StartTime != nil && req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime must not be zero", ErrInvalidInput)
	}

	if req.Status != nil {
		if !domain.IsValidStatus(*req.Status) {
			return fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		// Отмена проходит через отдельный эндпоинт: там идемпотентность,
		// проверка CanBeCancelled и запись причины/времени отмены
		if *req.Status == domain.StatusCancelled {
			return fmt.Errorf("%w: use cancel endpoint to cancel a booking", ErrInvalidInput)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long, max %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateServiceIDs проверяет, что все ID положительны и не повторяются
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

// sameServiceSet сравнивает наборы услуг без учета порядка
func sameServiceSet(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[int64]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
