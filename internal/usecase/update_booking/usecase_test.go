package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-SalonService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// Фейки зависимостей use case

type fakeBookingRepo struct {
	booking          *domain.Booking
	overlapping      []*domain.Booking
	overlapCalls     int
	lastExcludeID    *int64
	updatedFields    *bookingRepo.UpdateFields
	replacedServices []int64
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) FindOverlapping(_ context.Context, filter domain.OverlapFilter) ([]*domain.Booking, error) {
	f.overlapCalls++
	f.lastExcludeID = filter.ExcludeBookingID
	return f.overlapping, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, id int64, fields bookingRepo.UpdateFields) error {
	if f.booking == nil || f.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedFields = &fields
	if fields.StartTime != nil {
		f.booking.StartTime = *fields.StartTime
	}
	if fields.EndTime != nil {
		f.booking.EndTime = *fields.EndTime
	}
	if fields.Status != nil {
		f.booking.Status = *fields.Status
	}
	if fields.Notes != nil {
		f.booking.Notes = fields.Notes
	}
	if fields.TherapistID != nil {
		f.booking.TherapistID = fields.TherapistID
	}
	if fields.RoomID != nil {
		f.booking.RoomID = fields.RoomID
	}
	if fields.CustomerID != nil {
		f.booking.CustomerID = *fields.CustomerID
	}
	return nil
}

func (f *fakeBookingRepo) ReplaceServices(_ context.Context, _ int64, serviceIDs []int64) error {
	f.replacedServices = serviceIDs
	f.booking.ServiceIDs = serviceIDs
	return nil
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

type fakeCustomerRepo struct {
	customers map[int64]*domain.Customer
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return c, nil
	}
	return nil, customerRepo.ErrCustomerNotFound
}

type fakeStaffClient struct {
	employees map[int64]*staffservice.Employee
}

func (f *fakeStaffClient) GetEmployee(_ context.Context, _, employeeID int64) (*staffservice.Employee, error) {
	if e, ok := f.employees[employeeID]; ok {
		return e, nil
	}
	return nil, staffservice.ErrEmployeeNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// fixedClock детерминированные "сейчас" для тестов
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func existingBooking() *domain.Booking {
	return &domain.Booking{
		ID:          1,
		BranchID:    1,
		CustomerID:  5,
		TherapistID: ptr.Ptr(int64(100)),
		ServiceIDs:  []int64{10},
		StartTime:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		Status:      domain.StatusConfirmed,
		CreatedBy:   42,
	}
}

func testDeps() (*fakeBookingRepo, *UseCase) {
	bookings := &fakeBookingRepo{booking: existingBooking()}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		10: {ID: 10, BranchID: 1, DurationMinutes: 60, IsActive: true},
		11: {ID: 11, BranchID: 1, DurationMinutes: 30, IsActive: true},
	}}
	customers := &fakeCustomerRepo{customers: map[int64]*domain.Customer{
		5: {ID: 5, IsActive: true},
		6: {ID: 6, IsActive: true},
	}}
	staff := &fakeStaffClient{employees: map[int64]*staffservice.Employee{
		100: {ID: 100, BranchID: 1},
		101: {ID: 101, BranchID: 1},
	}}
	uc := NewUseCase(bookings, services, customers, staff, fakeTxManager{}, noopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	return bookings, uc
}

func manager() domain.Actor {
	return domain.Actor{UserID: 42, Role: domain.RoleManager, BranchID: 1}
}

func TestExecute_RescheduleRecomputesEndTimeAndExcludesSelf(t *testing.T) {
	bookings, uc := testDeps()

	newStart := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     manager(),
		BookingID: 1,
		StartTime: &newStart,
	})
	require.NoError(t, err)

	// Услуги не менялись: end_time = новый start + прежние 60 минут
	assert.Equal(t, newStart.Add(time.Hour), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)

	// Проверка пересечений была и исключала само бронирование
	assert.Equal(t, 1, bookings.overlapCalls)
	require.NotNil(t, bookings.lastExcludeID)
	assert.Equal(t, int64(1), *bookings.lastExcludeID)
}

func TestExecute_ServiceChangeRecomputesEndTime(t *testing.T) {
	bookings, uc := testDeps()

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:      manager(),
		BookingID:  1,
		ServiceIDs: []int64{10, 11},
	})
	require.NoError(t, err)

	// 60 + 30 минут от прежнего начала
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, []int64{10, 11}, bookings.replacedServices)
}

func TestExecute_NotesOnlyUpdateSkipsConflictCheck(t *testing.T) {
	bookings, uc := testDeps()
	// Даже при занятом мастере правка заметок проходит
	bookings.overlapping = []*domain.Booking{{ID: 99}}

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     manager(),
		BookingID: 1,
		Notes:     ptr.Ptr("перенести оплату на карту"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, bookings.overlapCalls, "no-op по расписанию не перепроверяет пересечения")
	assert.Equal(t, existingBooking().EndTime, resp.EndTime, "end_time не пересчитывается")
	assert.Nil(t, bookings.replacedServices)
}

func TestExecute_SameServiceSetInDifferentOrderIsNoop(t *testing.T) {
	bookings, uc := testDeps()
	bookings.booking.ServiceIDs = []int64{10, 11}

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      manager(),
		BookingID:  1,
		ServiceIDs: []int64{11, 10},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, bookings.overlapCalls)
	assert.Nil(t, bookings.replacedServices)
}

func TestExecute_RescheduleConflictRejected(t *testing.T) {
	bookings, uc := testDeps()
	bookings.overlapping = []*domain.Booking{{ID: 99}}

	newStart := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		Actor:     manager(),
		BookingID: 1,
		StartTime: &newStart,
	})
	assert.ErrorIs(t, err, ErrTherapistUnavailable)
	assert.Nil(t, bookings.updatedFields)
}

func TestExecute_RescheduleToPastRejected(t *testing.T) {
	bookings, uc := testDeps()

	pastStart := time.Date(2026, 2, 28, 14, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		Actor:     manager(),
		BookingID: 1,
		StartTime: &pastStart,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, bookings.updatedFields)
}

func TestExecute_CancelledStatusRequiresCancelEndpoint(t *testing.T) {
	bookings, uc := testDeps()

	// Частичное обновление не может отменить бронирование: отмена идет через
	// отдельный эндпоинт с идемпотентностью и записью причины
	_, err := uc.Execute(context.Background(), &Request{
		Actor:     manager(),
		BookingID: 1,
		Status:    ptr.Ptr(domain.StatusCancelled),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, bookings.updatedFields, "запись не должна меняться")
	assert.Equal(t, domain.StatusConfirmed, bookings.booking.Status)
}

func TestExecute_CompletedBookingCannotBeRescheduled(t *testing.T) {
	bookings, uc := testDeps()
	bookings.booking.Status = domain.StatusCompleted

	newStart := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		Actor:     manager(),
		BookingID: 1,
		StartTime: &newStart,
	})
	assert.ErrorIs(t, err, ErrCannotUpdate)
}

func TestExecute_CompletedBookingAllowsNotesUpdate(t *testing.T) {
	bookings, uc := testDeps()
	bookings.booking.Status = domain.StatusCompleted

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     manager(),
		BookingID: 1,
		Notes:     ptr.Ptr("клиент доволен"),
	})
	assert.NoError(t, err)
}

func TestExecute_BookingNotFound(t *testing.T) {
	_, uc := testDeps()

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     manager(),
		BookingID: 404,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ForeignBranchDenied(t *testing.T) {
	_, uc := testDeps()

	actor := manager()
	actor.BranchID = 2

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     actor,
		BookingID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_NewTherapistMustExistInBranch(t *testing.T) {
	_, uc := testDeps()

	_, err := uc.Execute(context.Background(), &Request{
		Actor:       manager(),
		BookingID:   1,
		TherapistID: ptr.Ptr(int64(555)),
	})
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestExecute_UnknownCustomerRejected(t *testing.T) {
	_, uc := testDeps()

	_, err := uc.Execute(context.Background(), &Request{
		Actor:      manager(),
		BookingID:  1,
		CustomerID: ptr.Ptr(int64(404)),
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
