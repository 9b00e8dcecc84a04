package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// NewCustomer данные нового клиента, если бронирование создается без customerID
// Разрешение выполняется по телефону: существующий (в том числе soft-deleted)
// клиент переиспользуется и реактивируется, а не дублируется
type NewCustomer struct {
	Name  string
	Phone string
}

// Request модель запроса на создание бронирования
// Actor передается явно: usecase не читает идентичность из ambient-контекста
type Request struct {
	Actor       domain.Actor
	BranchID    int64
	CustomerID  *int64       // Существующий клиент (опционально)
	NewCustomer *NewCustomer // Или данные нового клиента
	ServiceIDs  []int64      // Минимум одна услуга
	TherapistID *int64       // nil = без мастера (проверка пересечений пропускается)
	RoomID      *int64       // nil = без кабинета (проверка пересечений пропускается)
	StartTime   time.Time
	Notes       *string
	Status      *domain.BookingStatus // pending или confirmed; по умолчанию confirmed
}

// Response модель ответа с созданным бронированием
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
