package get_branch_revenue

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/revenue/models"
)

type RevenueService interface {
	GetBranchRevenue(ctx context.Context, req *models.GetBranchRevenueRequest) (*models.RevenueListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
