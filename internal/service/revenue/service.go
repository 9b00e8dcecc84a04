package revenue

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	revenueRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/revenue"
	"github.com/m04kA/SMC-SalonService/internal/service/revenue/models"
)

// Service сервис журнала выручки филиала
type Service struct {
	revenueRepo RevenueRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса выручки
func NewService(revenueRepo RevenueRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		revenueRepo: revenueRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Record записывает выручку по завершенному бронированию
// Журнал append-only: одна запись на бронирование, правки невозможны.
// Доступно admin и manager в рамках филиала бронирования
func (s *Service) Record(ctx context.Context, req *models.RecordRevenueRequest) (*models.RevenueEntryResponse, error) {
	s.logger.Info("Record: recording revenue for booking=%d by actor=%d", req.BookingID, req.Actor.UserID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking_id must be positive", ErrInvalidInput)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	if !req.Actor.CanRecordRevenue() {
		s.logger.Warn("Record: access denied for actor=%d, role=%s", req.Actor.UserID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Record: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Record: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Record - repository error: %v", ErrInternal, err)
	}

	if !req.Actor.CanManageBranch(booking.BranchID) {
		s.logger.Warn("Record: access denied for actor=%d to branch=%d", req.Actor.UserID, booking.BranchID)
		return nil, ErrAccessDenied
	}

	if booking.Status != domain.StatusCompleted {
		s.logger.Warn("Record: booking id=%d is not completed, status=%s", req.BookingID, booking.Status)
		return nil, ErrBookingNotCompleted
	}

	// Одна запись на бронирование
	if _, err := s.revenueRepo.GetByBookingID(ctx, req.BookingID); err == nil {
		s.logger.Warn("Record: revenue for booking id=%d is already recorded", req.BookingID)
		return nil, ErrAlreadyRecorded
	} else if !errors.Is(err, revenueRepo.ErrEntryNotFound) {
		s.logger.Error("Record: repository error checking booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Record - repository error: %v", ErrInternal, err)
	}

	created, err := s.revenueRepo.Create(ctx, &domain.RevenueEntry{
		BranchID:   booking.BranchID,
		BookingID:  req.BookingID,
		Amount:     req.Amount,
		RecordedBy: req.Actor.UserID,
		Notes:      req.Notes,
	})
	if err != nil {
		s.logger.Error("Record: failed to create entry for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Record - failed to create entry: %v", ErrInternal, err)
	}

	s.logger.Info("Record: successfully recorded revenue entry id=%d for booking=%d", created.ID, req.BookingID)
	return models.FromDomainEntry(created), nil
}

// GetBranchRevenue возвращает журнал выручки филиала за период с итоговой суммой
// Доступно admin и manager
func (s *Service) GetBranchRevenue(ctx context.Context, req *models.GetBranchRevenueRequest) (*models.RevenueListResponse, error) {
	s.logger.Info("GetBranchRevenue: fetching revenue for branch=%d by actor=%d", req.BranchID, req.Actor.UserID)

	if req.BranchID <= 0 {
		return nil, fmt.Errorf("%w: branch_id must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, fmt.Errorf("%w: period end is before start", ErrInvalidInput)
	}

	if !req.Actor.CanRecordRevenue() || !req.Actor.CanManageBranch(req.BranchID) {
		s.logger.Warn("GetBranchRevenue: access denied for actor=%d to branch=%d", req.Actor.UserID, req.BranchID)
		return nil, ErrAccessDenied
	}

	filter := req.ToDomainFilter()

	entries, err := s.revenueRepo.GetByBranchWithPeriod(ctx, filter)
	if err != nil {
		s.logger.Error("GetBranchRevenue: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: GetBranchRevenue - repository error: %v", ErrInternal, err)
	}

	total, err := s.revenueRepo.SumByBranchWithPeriod(ctx, filter)
	if err != nil {
		s.logger.Error("GetBranchRevenue: failed to sum revenue for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: GetBranchRevenue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBranchRevenue: fetched %d entries for branch=%d, total=%.2f", len(entries), req.BranchID, total)
	return models.FromDomainEntryList(entries, total), nil
}
