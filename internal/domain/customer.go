package domain

import "time"

// Customer represents a client of the salon
// Phone is the uniqueness key: lookups by phone include soft-deleted customers,
// so a returning customer is reactivated instead of duplicated
type Customer struct {
	ID        int64
	Name      string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
