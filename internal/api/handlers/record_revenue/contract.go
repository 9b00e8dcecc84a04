package record_revenue

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/revenue/models"
)

type RevenueService interface {
	Record(ctx context.Context, req *models.RecordRevenueRequest) (*models.RevenueEntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
