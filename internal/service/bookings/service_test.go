package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelCalls       int
	lastCancelReason  string
	updateStatusCalls int
	lastStatus        domain.BookingStatus
	deleteCalls       int
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetByBranchWithFilter(_ context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.BranchID == filter.BranchID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updateStatusCalls++
	f.lastStatus = status
	f.bookings[id].Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelCalls++
	f.lastCancelReason = reason
	f.bookings[id].Status = domain.StatusCancelled
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.deleteCalls++
	delete(f.bookings, id)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func managerActor(branchID int64) domain.Actor {
	return domain.Actor{UserID: 42, Role: domain.RoleManager, BranchID: branchID}
}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:         id,
		BranchID:   1,
		CustomerID: 500,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     status,
		CreatedBy:  42,
	}
}

func newTestService(bookings ...*domain.Booking) (*fakeBookingRepo, *Service) {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo, NewService(repo, noopLogger{})
}

func TestCancel_ConfirmedBooking(t *testing.T) {
	repo, svc := newTestService(testBooking(1, domain.StatusConfirmed))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor:              managerActor(1),
		CancellationReason: "клиент попросил перенести",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.cancelCalls)
	assert.Equal(t, "клиент попросил перенести", repo.lastCancelReason)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
}

func TestCancel_AlreadyCancelledIsNoop(t *testing.T) {
	repo, svc := newTestService(testBooking(1, domain.StatusCancelled))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Actor: managerActor(1)})
	require.NoError(t, err)

	// Повторная отмена не трогает репозиторий
	assert.Equal(t, 0, repo.cancelCalls)
}

func TestCancel_CompletedBookingRejected(t *testing.T) {
	repo, svc := newTestService(testBooking(1, domain.StatusCompleted))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Actor: managerActor(1)})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, 0, repo.cancelCalls)
}

func TestCancel_ForeignBranchDenied(t *testing.T) {
	_, svc := newTestService(testBooking(1, domain.StatusConfirmed))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Actor: managerActor(99)})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_NotFound(t *testing.T) {
	_, svc := newTestService()

	err := svc.Cancel(context.Background(), 404, &models.CancelBookingRequest{Actor: managerActor(1)})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	_, svc := newTestService(testBooking(1, domain.StatusConfirmed))

	longReason := make([]byte, domain.MaxCancellationReasonLen+1)
	for i := range longReason {
		longReason[i] = 'x'
	}

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor:              managerActor(1),
		CancellationReason: string(longReason),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_ConfirmedToCompleted(t *testing.T) {
	repo, svc := newTestService(testBooking(1, domain.StatusConfirmed))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Actor:  managerActor(1),
		Status: string(domain.StatusCompleted),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.updateStatusCalls)
	assert.Equal(t, domain.StatusCompleted, repo.lastStatus)
}

func TestUpdateStatus_CancellationNotAllowed(t *testing.T) {
	repo, svc := newTestService(testBooking(1, domain.StatusConfirmed))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Actor:  managerActor(1),
		Status: string(domain.StatusCancelled),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, 0, repo.updateStatusCalls)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	_, svc := newTestService(testBooking(1, domain.StatusConfirmed))

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Actor:  managerActor(1),
		Status: "teleported",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_AdminOnly(t *testing.T) {
	repo, svc := newTestService(testBooking(1, domain.StatusCancelled))

	err := svc.Delete(context.Background(), 1, managerActor(1))
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, repo.deleteCalls)

	err = svc.Delete(context.Background(), 1, domain.Actor{UserID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.deleteCalls)
}

func TestGetByID_ForeignBranchDenied(t *testing.T) {
	_, svc := newTestService(testBooking(1, domain.StatusConfirmed))

	_, err := svc.GetByID(context.Background(), 1, managerActor(99))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_AdminSeesAnyBranch(t *testing.T) {
	_, svc := newTestService(testBooking(1, domain.StatusConfirmed))

	resp, err := svc.GetByID(context.Background(), 1, domain.Actor{UserID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestGetCustomerBookings_InvalidStatusRejected(t *testing.T) {
	_, svc := newTestService()

	badStatus := "unknown"
	_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		Actor:      managerActor(1),
		CustomerID: 500,
		Status:     &badStatus,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
