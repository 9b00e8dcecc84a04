package revenue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	revenueRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/revenue"
	"github.com/m04kA/SMC-SalonService/internal/service/revenue/models"
)

type fakeRevenueRepo struct {
	byBooking map[int64]*domain.RevenueEntry
	entries   []*domain.RevenueEntry
	nextID    int64
}

func newFakeRevenueRepo() *fakeRevenueRepo {
	return &fakeRevenueRepo{byBooking: make(map[int64]*domain.RevenueEntry), nextID: 1}
}

func (f *fakeRevenueRepo) Create(_ context.Context, entry *domain.RevenueEntry) (*domain.RevenueEntry, error) {
	created := *entry
	created.ID = f.nextID
	f.nextID++
	f.byBooking[created.BookingID] = &created
	f.entries = append(f.entries, &created)
	return &created, nil
}

func (f *fakeRevenueRepo) GetByBranchWithPeriod(_ context.Context, filter domain.RevenuePeriodFilter) ([]*domain.RevenueEntry, error) {
	var result []*domain.RevenueEntry
	for _, e := range f.entries {
		if e.BranchID == filter.BranchID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeRevenueRepo) SumByBranchWithPeriod(_ context.Context, filter domain.RevenuePeriodFilter) (float64, error) {
	var total float64
	for _, e := range f.entries {
		if e.BranchID == filter.BranchID {
			total += e.Amount
		}
	}
	return total, nil
}

func (f *fakeRevenueRepo) GetByBookingID(_ context.Context, bookingID int64) (*domain.RevenueEntry, error) {
	entry, ok := f.byBooking[bookingID]
	if !ok {
		return nil, revenueRepo.ErrEntryNotFound
	}
	return entry, nil
}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func managerActor(branchID int64) domain.Actor {
	return domain.Actor{UserID: 42, Role: domain.RoleManager, BranchID: branchID}
}

func newTestService(bookings ...*domain.Booking) (*fakeRevenueRepo, *Service) {
	bRepo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		bRepo.bookings[b.ID] = b
	}
	rRepo := newFakeRevenueRepo()
	return rRepo, NewService(rRepo, bRepo, noopLogger{})
}

func completedBooking(id, branchID int64) *domain.Booking {
	return &domain.Booking{ID: id, BranchID: branchID, Status: domain.StatusCompleted}
}

func TestRecord_CompletedBooking(t *testing.T) {
	repo, svc := newTestService(completedBooking(1, 1))

	resp, err := svc.Record(context.Background(), &models.RecordRevenueRequest{
		Actor:     managerActor(1),
		BookingID: 1,
		Amount:    3500,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.BranchID)
	assert.Equal(t, float64(3500), resp.Amount)
	assert.Equal(t, int64(42), resp.RecordedBy)
	assert.Len(t, repo.entries, 1)
}

func TestRecord_NotCompletedRejected(t *testing.T) {
	repo, svc := newTestService(&domain.Booking{ID: 1, BranchID: 1, Status: domain.StatusConfirmed})

	_, err := svc.Record(context.Background(), &models.RecordRevenueRequest{
		Actor:     managerActor(1),
		BookingID: 1,
		Amount:    3500,
	})
	assert.ErrorIs(t, err, ErrBookingNotCompleted)
	assert.Empty(t, repo.entries)
}

func TestRecord_SecondEntryRejected(t *testing.T) {
	repo, svc := newTestService(completedBooking(1, 1))

	req := &models.RecordRevenueRequest{Actor: managerActor(1), BookingID: 1, Amount: 3500}

	_, err := svc.Record(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Record(context.Background(), req)
	assert.ErrorIs(t, err, ErrAlreadyRecorded)
	assert.Len(t, repo.entries, 1)
}

func TestRecord_ReceptionDenied(t *testing.T) {
	_, svc := newTestService(completedBooking(1, 1))

	_, err := svc.Record(context.Background(), &models.RecordRevenueRequest{
		Actor:     domain.Actor{UserID: 7, Role: domain.RoleReception, BranchID: 1},
		BookingID: 1,
		Amount:    3500,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRecord_ForeignBranchDenied(t *testing.T) {
	_, svc := newTestService(completedBooking(1, 2))

	_, err := svc.Record(context.Background(), &models.RecordRevenueRequest{
		Actor:     managerActor(1),
		BookingID: 1,
		Amount:    3500,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRecord_NegativeAmountRejected(t *testing.T) {
	_, svc := newTestService(completedBooking(1, 1))

	_, err := svc.Record(context.Background(), &models.RecordRevenueRequest{
		Actor:     managerActor(1),
		BookingID: 1,
		Amount:    -1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecord_BookingNotFound(t *testing.T) {
	_, svc := newTestService()

	_, err := svc.Record(context.Background(), &models.RecordRevenueRequest{
		Actor:     managerActor(1),
		BookingID: 404,
		Amount:    100,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetBranchRevenue_TotalsEntries(t *testing.T) {
	repo, svc := newTestService(completedBooking(1, 1), completedBooking(2, 1))

	actor := managerActor(1)
	for _, bookingID := range []int64{1, 2} {
		_, err := svc.Record(context.Background(), &models.RecordRevenueRequest{
			Actor:     actor,
			BookingID: bookingID,
			Amount:    1000,
		})
		require.NoError(t, err)
	}
	require.Len(t, repo.entries, 2)

	resp, err := svc.GetBranchRevenue(context.Background(), &models.GetBranchRevenueRequest{
		Actor:    actor,
		BranchID: 1,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Entries, 2)
	assert.Equal(t, float64(2000), resp.Total)
}

func TestGetBranchRevenue_InvertedPeriodRejected(t *testing.T) {
	_, svc := newTestService()

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(-24 * time.Hour)

	_, err := svc.GetBranchRevenue(context.Background(), &models.GetBranchRevenueRequest{
		Actor:    managerActor(1),
		BranchID: 1,
		From:     &from,
		To:       &to,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBranchRevenue_ReceptionDenied(t *testing.T) {
	_, svc := newTestService()

	_, err := svc.GetBranchRevenue(context.Background(), &models.GetBranchRevenueRequest{
		Actor:    domain.Actor{UserID: 7, Role: domain.RoleReception, BranchID: 1},
		BranchID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
