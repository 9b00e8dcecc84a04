package domain

// Business validation constants
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxServicesPerBooking     = 20
	MaxNotesLength            = 500
	MaxCancellationReasonLen  = 500
	MaxCustomerNameLength     = 200
	MaxPhoneLength            = 32
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, скрываемых из выдачи расписания по умолчанию
// Используется только для фильтрации списков; из проверок пересечений
// исключаются только отмененные бронирования (см. Booking.IsActive)
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ValidStatuses все допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// IsValidStatus проверяет, что строка является допустимым статусом
func IsValidStatus(s BookingStatus) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}
