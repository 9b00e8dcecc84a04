package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type fakeBookingRepo struct {
	byTherapist []*domain.Booking
	byRoom      []*domain.Booking
	lastFilters []domain.OverlapFilter
}

func (f *fakeBookingRepo) FindOverlapping(_ context.Context, filter domain.OverlapFilter) ([]*domain.Booking, error) {
	f.lastFilters = append(f.lastFilters, filter)
	if filter.TherapistID != nil {
		return f.byTherapist, nil
	}
	return f.byRoom, nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Service, error) {
	var result []*domain.Service
	for _, id := range ids {
		if svc, ok := f.services[id]; ok {
			result = append(result, svc)
		}
	}
	return result, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testDeps() (*fakeBookingRepo, *UseCase) {
	bookings := &fakeBookingRepo{}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		10: {ID: 10, DurationMinutes: 60, IsActive: true},
		11: {ID: 11, DurationMinutes: 30, IsActive: true},
	}}
	return bookings, NewUseCase(bookings, services, noopLogger{})
}

func baseRequest() *Request {
	return &Request{
		BranchID:    1,
		TherapistID: ptr.Ptr(int64(100)),
		ServiceIDs:  []int64{10, 11},
		StartTime:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}
}

func TestExecute_FreeInterval(t *testing.T) {
	_, uc := testDeps()

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.True(t, resp.Available)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC), resp.EndTime)
}

func TestExecute_TherapistBusy(t *testing.T) {
	bookings, uc := testDeps()
	bookings.byTherapist = []*domain.Booking{{ID: 33}}

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.True(t, resp.TherapistUnavailable)
	assert.False(t, resp.RoomUnavailable)
}

func TestExecute_BothResourcesChecked(t *testing.T) {
	bookings, uc := testDeps()
	bookings.byRoom = []*domain.Booking{{ID: 34}}

	req := baseRequest()
	req.RoomID = ptr.Ptr(int64(7))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Проверки независимы: мастер свободен, кабинет занят
	assert.False(t, resp.Available)
	assert.False(t, resp.TherapistUnavailable)
	assert.True(t, resp.RoomUnavailable)
	assert.Len(t, bookings.lastFilters, 2)
}

func TestExecute_ExcludeBookingIDIsPassedThrough(t *testing.T) {
	bookings, uc := testDeps()

	req := baseRequest()
	req.ExcludeBookingID = ptr.Ptr(int64(55))

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, bookings.lastFilters, 1)
	require.NotNil(t, bookings.lastFilters[0].ExcludeBookingID)
	assert.Equal(t, int64(55), *bookings.lastFilters[0].ExcludeBookingID)
}

func TestExecute_NoResourceRejected(t *testing.T) {
	_, uc := testDeps()

	req := baseRequest()
	req.TherapistID = nil

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UnknownServiceRejected(t *testing.T) {
	_, uc := testDeps()

	req := baseRequest()
	req.ServiceIDs = []int64{10, 404}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
