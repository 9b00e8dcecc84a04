package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

type fakeServiceRepo struct {
	services map[int64]*domain.Service
	nextID   int64
}

func newFakeServiceRepo(services ...*domain.Service) *fakeServiceRepo {
	repo := &fakeServiceRepo{services: make(map[int64]*domain.Service), nextID: 1}
	for _, svc := range services {
		repo.services[svc.ID] = svc
		if svc.ID >= repo.nextID {
			repo.nextID = svc.ID + 1
		}
	}
	return repo
}

func (f *fakeServiceRepo) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	created := *svc
	created.ID = f.nextID
	f.nextID++
	f.services[created.ID] = &created
	return &created, nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeServiceRepo) ListByBranch(_ context.Context, branchID int64, activeOnly bool) ([]*domain.Service, error) {
	var result []*domain.Service
	for _, svc := range f.services {
		if svc.BranchID != branchID {
			continue
		}
		if activeOnly && !svc.IsActive {
			continue
		}
		result = append(result, svc)
	}
	return result, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, id int64, svc *domain.Service) error {
	if _, ok := f.services[id]; !ok {
		return serviceRepo.ErrServiceNotFound
	}
	updated := *svc
	updated.ID = id
	f.services[id] = &updated
	return nil
}

func (f *fakeServiceRepo) SetActive(_ context.Context, id int64, active bool) error {
	svc, ok := f.services[id]
	if !ok {
		return serviceRepo.ErrServiceNotFound
	}
	svc.IsActive = active
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func managerActor(branchID int64) domain.Actor {
	return domain.Actor{UserID: 42, Role: domain.RoleManager, BranchID: branchID}
}

func TestCreate_ValidService(t *testing.T) {
	svc := NewService(newFakeServiceRepo(), noopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Actor:           managerActor(1),
		BranchID:        1,
		Name:            "  Массаж спины  ",
		DurationMinutes: 60,
		Price:           3500,
	})
	require.NoError(t, err)

	assert.Equal(t, "Массаж спины", resp.Name)
	assert.True(t, resp.IsActive)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestCreate_DurationOutOfRange(t *testing.T) {
	svc := NewService(newFakeServiceRepo(), noopLogger{})

	for _, duration := range []int{0, domain.MaxServiceDurationMinutes + 1} {
		_, err := svc.Create(context.Background(), &models.CreateServiceRequest{
			Actor:           managerActor(1),
			BranchID:        1,
			Name:            "Массаж",
			DurationMinutes: duration,
			Price:           3500,
		})
		assert.ErrorIs(t, err, ErrInvalidInput, "duration=%d", duration)
	}
}

func TestCreate_ForeignBranchDenied(t *testing.T) {
	svc := NewService(newFakeServiceRepo(), noopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Actor:           managerActor(99),
		BranchID:        1,
		Name:            "Массаж",
		DurationMinutes: 60,
		Price:           3500,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListByBranch_ActiveOnlyHidesDisabled(t *testing.T) {
	repo := newFakeServiceRepo(
		&domain.Service{ID: 1, BranchID: 1, Name: "Массаж", DurationMinutes: 60, IsActive: true},
		&domain.Service{ID: 2, BranchID: 1, Name: "Пилинг", DurationMinutes: 30, IsActive: false},
	)
	svc := NewService(repo, noopLogger{})

	resp, err := svc.ListByBranch(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Len(t, resp.Services, 1)

	resp, err = svc.ListByBranch(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Len(t, resp.Services, 2)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := newFakeServiceRepo(
		&domain.Service{ID: 1, BranchID: 1, Name: "Массаж", DurationMinutes: 60, Price: 3500, IsActive: true},
	)
	svc := NewService(repo, noopLogger{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdateServiceRequest{
		Actor: managerActor(1),
		Price: ptr.Ptr(4000.0),
	})
	require.NoError(t, err)

	// Остальные поля не тронуты
	assert.Equal(t, "Массаж", resp.Name)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 4000.0, resp.Price)
}

func TestUpdate_MergedFieldsValidated(t *testing.T) {
	repo := newFakeServiceRepo(
		&domain.Service{ID: 1, BranchID: 1, Name: "Массаж", DurationMinutes: 60, Price: 3500, IsActive: true},
	)
	svc := NewService(repo, noopLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdateServiceRequest{
		Actor:           managerActor(1),
		DurationMinutes: ptr.Ptr(0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetActive_TogglesService(t *testing.T) {
	repo := newFakeServiceRepo(
		&domain.Service{ID: 1, BranchID: 1, Name: "Массаж", DurationMinutes: 60, IsActive: true},
	)
	svc := NewService(repo, noopLogger{})

	err := svc.SetActive(context.Background(), 1, false, managerActor(1))
	require.NoError(t, err)
	assert.False(t, repo.services[1].IsActive)
}

func TestSetActive_NotFound(t *testing.T) {
	svc := NewService(newFakeServiceRepo(), noopLogger{})

	err := svc.SetActive(context.Background(), 404, false, managerActor(1))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
