package update_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модель запроса на частичное обновление бронирования
// nil-поля означают "оставить как есть"; в частности ServiceIDs == nil
// сохраняет текущий список услуг (пустой слайс — ошибка валидации)
type Request struct {
	Actor       domain.Actor
	BookingID   int64
	CustomerID  *int64
	ServiceIDs  []int64
	TherapistID *int64
	RoomID      *int64
	StartTime   *time.Time
	Status      *domain.BookingStatus
	Notes       *string
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID              int64
	BranchID        int64
	CustomerID      int64
	TherapistID     *int64
	RoomID          *int64
	ServiceIDs      []int64
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string
	CreatedBy       int64
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
