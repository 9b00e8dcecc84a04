package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// Booking represents a scheduled appointment in the system
// EndTime is always derived: StartTime + sum of durations of ServiceIDs,
// recomputed whenever StartTime or the service list changes
type Booking struct {
	ID          int64
	BranchID    int64
	CustomerID  int64
	TherapistID *int64 // nil = нет назначенного мастера
	RoomID      *int64 // nil = нет назначенного кабинета
	ServiceIDs  []int64
	StartTime   time.Time
	EndTime     time.Time
	Status      BookingStatus
	CreatedBy   int64
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking participates in conflict checks
// Only cancelled bookings release their interval; every other status,
// including no_show, keeps occupying it
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// CanBeUpdated returns true if the booking can be rescheduled or have its services changed
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsFinished returns true if the booking reached a terminal state
func (b *Booking) IsFinished() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow || b.Status == StatusCancelled
}

// BranchBookingsFilter фильтр для получения бронирований филиала
type BranchBookingsFilter struct {
	BranchID        int64          // Обязательный параметр
	TherapistID     *int64         // Фильтр по мастеру (опционально)
	RoomID          *int64         // Фильтр по кабинету (опционально)
	CustomerID      *int64         // Фильтр по клиенту (опционально)
	From            *time.Time     // Начало периода (опционально)
	To              *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show бронирования
}

// OverlapFilter параметры поиска пересекающихся бронирований
// Ровно одно из полей TherapistID/RoomID должно быть задано —
// проверки по мастеру и по кабинету выполняются независимо
type OverlapFilter struct {
	TherapistID      *int64
	RoomID           *int64
	StartTime        time.Time
	EndTime          time.Time
	ExcludeBookingID *int64 // Исключить бронирование из поиска (reschedule не конфликтует сам с собой)
}
