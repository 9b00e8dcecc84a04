package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-SalonService/internal/service/customers/models"
)

type fakeCustomerRepo struct {
	byID    map[int64]*domain.Customer
	byPhone map[string]*domain.Customer
	nextID  int64

	reactivateCalls int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		byID:    make(map[int64]*domain.Customer),
		byPhone: make(map[string]*domain.Customer),
		nextID:  1,
	}
}

func (f *fakeCustomerRepo) add(c *domain.Customer) *domain.Customer {
	f.byID[c.ID] = c
	f.byPhone[c.Phone] = c
	return c
}

func (f *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	created := *customer
	created.ID = f.nextID
	f.nextID++
	return f.add(&created), nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	customer, ok := f.byID[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return customer, nil
}

func (f *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	customer, ok := f.byPhone[phone]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return customer, nil
}

func (f *fakeCustomerRepo) Reactivate(_ context.Context, id int64, name string) error {
	customer, ok := f.byID[id]
	if !ok {
		return customerRepo.ErrCustomerNotFound
	}
	f.reactivateCalls++
	customer.IsActive = true
	customer.Name = name
	return nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, id int64, name string) error {
	customer, ok := f.byID[id]
	if !ok {
		return customerRepo.ErrCustomerNotFound
	}
	customer.Name = name
	return nil
}

func (f *fakeCustomerRepo) Deactivate(_ context.Context, id int64) error {
	customer, ok := f.byID[id]
	if !ok {
		return customerRepo.ErrCustomerNotFound
	}
	customer.IsActive = false
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestResolveOrCreate_CreatesNewCustomer(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo, noopLogger{})

	resp, err := svc.ResolveOrCreate(context.Background(), &models.ResolveCustomerRequest{
		Name:  "Анна Петрова",
		Phone: "+79001234567",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.True(t, resp.IsActive)
	assert.Equal(t, "Анна Петрова", resp.Name)
}

func TestResolveOrCreate_FindsExistingByPhone(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.add(&domain.Customer{ID: 5, Name: "Анна", Phone: "+79001234567", IsActive: true})
	svc := NewService(repo, noopLogger{})

	resp, err := svc.ResolveOrCreate(context.Background(), &models.ResolveCustomerRequest{
		Name:  "Другое Имя",
		Phone: "+79001234567",
	})
	require.NoError(t, err)

	// Существующий активный клиент возвращается как есть, имя не меняется
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "Анна", resp.Name)
	assert.Equal(t, 0, repo.reactivateCalls)
}

func TestResolveOrCreate_ReactivatesDeactivated(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.add(&domain.Customer{ID: 5, Name: "Анна", Phone: "+79001234567", IsActive: false})
	svc := NewService(repo, noopLogger{})

	resp, err := svc.ResolveOrCreate(context.Background(), &models.ResolveCustomerRequest{
		Name:  "Анна Петрова",
		Phone: "+79001234567",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ID)
	assert.True(t, resp.IsActive)
	assert.Equal(t, "Анна Петрова", resp.Name)
	assert.Equal(t, 1, repo.reactivateCalls)
}

func TestResolveOrCreate_DuplicateRaceReReads(t *testing.T) {
	// Клиент появился между первым GetByPhone и Create
	raceWinner := &domain.Customer{ID: 9, Name: "Анна", Phone: "+79001234567", IsActive: true}
	svcRepo := &racingCustomerRepo{inner: newFakeCustomerRepo(), winner: raceWinner}
	svc := NewService(svcRepo, noopLogger{})

	resp, err := svc.ResolveOrCreate(context.Background(), &models.ResolveCustomerRequest{
		Name:  "Анна",
		Phone: "+79001234567",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
}

// racingCustomerRepo имитирует параллельное создание: первый GetByPhone
// не находит клиента, Create проигрывает гонку, повторный GetByPhone находит
type racingCustomerRepo struct {
	inner   *fakeCustomerRepo
	winner  *domain.Customer
	lookups int
}

func (r *racingCustomerRepo) GetByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return r.winner, nil
}

func (r *racingCustomerRepo) Create(_ context.Context, _ *domain.Customer) (*domain.Customer, error) {
	return nil, customerRepo.ErrDuplicatePhone
}

func (r *racingCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return r.inner.GetByID(ctx, id)
}

func (r *racingCustomerRepo) Reactivate(ctx context.Context, id int64, name string) error {
	return r.inner.Reactivate(ctx, id, name)
}

func (r *racingCustomerRepo) Update(ctx context.Context, id int64, name string) error {
	return r.inner.Update(ctx, id, name)
}

func (r *racingCustomerRepo) Deactivate(ctx context.Context, id int64) error {
	return r.inner.Deactivate(ctx, id)
}

func TestResolveOrCreate_Validation(t *testing.T) {
	svc := NewService(newFakeCustomerRepo(), noopLogger{})

	_, err := svc.ResolveOrCreate(context.Background(), &models.ResolveCustomerRequest{Phone: "+79001234567"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ResolveOrCreate(context.Background(), &models.ResolveCustomerRequest{Name: "Анна"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_ChangesNameOnly(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.add(&domain.Customer{ID: 5, Name: "Анна", Phone: "+79001234567", IsActive: true})
	svc := NewService(repo, noopLogger{})

	resp, err := svc.Update(context.Background(), 5, &models.UpdateCustomerRequest{Name: "Анна Петрова"})
	require.NoError(t, err)

	assert.Equal(t, "Анна Петрова", resp.Name)
	assert.Equal(t, "+79001234567", resp.Phone)
}

func TestDeactivate_NotFound(t *testing.T) {
	svc := NewService(newFakeCustomerRepo(), noopLogger{})

	err := svc.Deactivate(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
