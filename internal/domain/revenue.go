package domain

import "time"

// RevenueEntry запись в журнале выручки филиала
// Привязана к завершенному бронированию; журнал append-only
type RevenueEntry struct {
	ID         int64
	BranchID   int64
	BookingID  int64
	Amount     float64
	RecordedBy int64
	Notes      *string
	CreatedAt  time.Time
}

// RevenuePeriodFilter фильтр журнала выручки по филиалу и периоду
type RevenuePeriodFilter struct {
	BranchID int64
	From     *time.Time
	To       *time.Time
}
