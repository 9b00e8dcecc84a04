package domain

import "time"

// Service represents a sellable offering with a fixed duration and price
// Invariant: DurationMinutes >= 1
type Service struct {
	ID              int64
	BranchID        int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TotalDurationMinutes суммирует длительность набора услуг
func TotalDurationMinutes(services []*Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	return total
}
