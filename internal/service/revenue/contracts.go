package revenue

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// RevenueRepository интерфейс репозитория журнала выручки
type RevenueRepository interface {
	Create(ctx context.Context, entry *domain.RevenueEntry) (*domain.RevenueEntry, error)
	GetByBranchWithPeriod(ctx context.Context, filter domain.RevenuePeriodFilter) ([]*domain.RevenueEntry, error)
	SumByBranchWithPeriod(ctx context.Context, filter domain.RevenuePeriodFilter) (float64, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.RevenueEntry, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
