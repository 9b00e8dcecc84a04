package check_availability

import "time"

// Request модель запроса проверки доступности интервала
// Хотя бы один из TherapistID/RoomID обязателен; ExcludeBookingID
// исключает бронирование из поиска (для сценария переноса)
type Request struct {
	BranchID         int64
	TherapistID      *int64
	RoomID           *int64
	ServiceIDs       []int64
	StartTime        time.Time
	ExcludeBookingID *int64
}

// Response модель ответа: свободен ли интервал и из чего он складывается
type Response struct {
	Available            bool
	StartTime            time.Time
	EndTime              time.Time
	DurationMinutes      int
	TherapistUnavailable bool
	RoomUnavailable      bool
}
