package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-SalonService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// Фейки зависимостей use case

type fakeBookingRepo struct {
	overlapping map[string][]*domain.Booking // "therapist" / "room"
	created     *domain.Booking
	nextID      int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	created := *b
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) FindOverlapping(_ context.Context, filter domain.OverlapFilter) ([]*domain.Booking, error) {
	if filter.TherapistID != nil {
		return f.overlapping["therapist"], nil
	}
	return f.overlapping["room"], nil
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
	byID        map[int64]*domain.Customer
	byPhone     map[string]*domain.Customer
	reactivated []int64
	created     *domain.Customer
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, customerRepo.ErrCustomerNotFound
}

func (f *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	if c, ok := f.byPhone[phone]; ok {
		return c, nil
	}
	return nil, customerRepo.ErrCustomerNotFound
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	created := *c
	created.ID = 777
	f.created = &created
	return &created, nil
}

func (f *fakeCustomerRepo) Reactivate(_ context.Context, id int64, _ string) error {
	f.reactivated = append(f.reactivated, id)
	return nil
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

type fakeTxManager struct {
	err error // подменяет результат fn, имитируя проигрыш гонки
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
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

func newTestUseCase(
	bookingRepo *fakeBookingRepo,
	serviceRepo *fakeServiceRepo,
	custRepo *fakeCustomerRepo,
	staff *fakeStaffClient,
	txMgr *fakeTxManager,
) *UseCase {
	uc := NewUseCase(bookingRepo, serviceRepo, custRepo, staff, txMgr, noopLogger{})
	uc.timeProvider = fixedClock{now: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	return uc
}

func reception() domain.Actor {
	return domain.Actor{UserID: 42, Role: domain.RoleReception, BranchID: 1}
}

func baseRequest() *Request {
	return &Request{
		Actor:       reception(),
		BranchID:    1,
		CustomerID:  ptr.Ptr(int64(5)),
		ServiceIDs:  []int64{10, 11},
		TherapistID: ptr.Ptr(int64(100)),
		StartTime:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
	}
}

func testDeps() (*fakeBookingRepo, *fakeServiceRepo, *fakeCustomerRepo, *fakeStaffClient, *fakeTxManager) {
	bookings := &fakeBookingRepo{overlapping: map[string][]*domain.Booking{}, nextID: 1}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		10: {ID: 10, BranchID: 1, Name: "Массаж спины", DurationMinutes: 60, IsActive: true},
		11: {ID: 11, BranchID: 1, Name: "Стоун-терапия", DurationMinutes: 30, IsActive: true},
	}}
	customers := &fakeCustomerRepo{
		byID: map[int64]*domain.Customer{
			5: {ID: 5, Name: "Иван", Phone: "+79990001122", IsActive: true},
		},
		byPhone: map[string]*domain.Customer{},
	}
	staff := &fakeStaffClient{employees: map[int64]*staffservice.Employee{
		100: {ID: 100, BranchID: 1, Name: "Мастер"},
	}}
	return bookings, services, customers, staff, &fakeTxManager{}
}

func TestExecute_DerivesEndTimeFromServiceDurations(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	// 60 + 30 минут от 10:00
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC), resp.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, int64(42), resp.CreatedBy)
}

func TestExecute_UnknownServiceFailsWithoutWriting(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	req := baseRequest()
	req.ServiceIDs = []int64{10, 999}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Nil(t, bookings.created, "при частичном разрешении услуг бронирование не создается")
}

func TestExecute_InactiveServiceRejected(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	services.services[11].IsActive = false
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrServiceInactive)
	assert.Nil(t, bookings.created)
}

func TestExecute_TherapistOverlapRejected(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	bookings.overlapping["therapist"] = []*domain.Booking{{ID: 33}}
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrTherapistUnavailable)
	assert.Nil(t, bookings.created)
}

func TestExecute_RoomOverlapRejected(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	bookings.overlapping["room"] = []*domain.Booking{{ID: 34}}
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	req := baseRequest()
	req.TherapistID = nil
	req.RoomID = ptr.Ptr(int64(7))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.Nil(t, bookings.created)
}

func TestExecute_NoResourcesSkipsConflictChecks(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	// Пересечения есть по обоим ресурсам, но бронирование без мастера и кабинета
	bookings.overlapping["therapist"] = []*domain.Booking{{ID: 33}}
	bookings.overlapping["room"] = []*domain.Booking{{ID: 34}}
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	req := baseRequest()
	req.TherapistID = nil

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.TherapistID)
	assert.Nil(t, resp.RoomID)
}

func TestExecute_PastStartTimeRejected(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	req := baseRequest()
	req.StartTime = time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, bookings.created)
}

func TestExecute_SerializationConflictMapsToBookingConflict(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	txMgr.err = txmanager.ErrSerializationConflict
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, ErrBookingConflict)
}

func TestExecute_TherapistNotFoundInBranch(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	req := baseRequest()
	req.TherapistID = ptr.Ptr(int64(555))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestExecute_NewCustomerIsCreated(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	req := baseRequest()
	req.CustomerID = nil
	req.NewCustomer = &NewCustomer{Name: "Мария", Phone: "+79995556677"}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, customers.created)
	assert.Equal(t, customers.created.ID, resp.CustomerID)
	assert.True(t, customers.created.IsActive)
}

func TestExecute_DeactivatedCustomerIsReactivatedByPhone(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	customers.byPhone["+79995556677"] = &domain.Customer{
		ID: 9, Name: "Мария", Phone: "+79995556677", IsActive: false,
	}
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	req := baseRequest()
	req.CustomerID = nil
	req.NewCustomer = &NewCustomer{Name: "Мария Петрова", Phone: "+79995556677"}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.CustomerID, "переиспользуется существующая запись, дубликат не создается")
	assert.Equal(t, []int64{9}, customers.reactivated)
	assert.Nil(t, customers.created)
}

func TestExecute_UnknownCustomerIDRejected(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	req := baseRequest()
	req.CustomerID = ptr.Ptr(int64(404))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_ActorFromAnotherBranchDenied(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	req := baseRequest()
	req.Actor.BranchID = 2

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_TherapistRoleCannotCreate(t *testing.T) {
	bookings, services, customers, staff, txMgr := testDeps()
	uc := newTestUseCase(bookings, services, customers, staff, txMgr)

	req := baseRequest()
	req.Actor.Role = domain.RoleTherapist

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
