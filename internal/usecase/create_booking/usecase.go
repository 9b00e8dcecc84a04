package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	staffClient "github.com/m04kA/SMC-SalonService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	customerRepo CustomerRepository
	staffClient  StaffServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	customerRepo CustomerRepository,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		staffClient:  staffClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверка пересечений и запись выполняются в одной SERIALIZABLE транзакции:
// check-then-write без неё — гонка, при которой два конкурирующих запроса на один
// интервал оба проходят проверку и оба записываются. Проигравшая транзакция
// получает конфликт сериализации, который возвращается как ErrBookingConflict
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%d role=%s branch=%d services=%v start=%s",
		req.Actor.UserID, req.Actor.Role, req.BranchID, req.ServiceIDs, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// Бронирование на прошедшее время не создается
	if req.StartTime.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: start time %s is in the past", req.StartTime.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: startTime must not be in the past", ErrInvalidInput)
	}

	// 2. Проверяем, что мастер существует и работает в филиале (внешний вызов — до транзакции)
	if req.TherapistID != nil {
		if _, err := uc.staffClient.GetEmployee(ctx, req.BranchID, *req.TherapistID); err != nil {
			if errors.Is(err, staffClient.ErrEmployeeNotFound) {
				uc.logger.Warn("CreateBooking: therapist id=%d not found in branch=%d", *req.TherapistID, req.BranchID)
				return nil, ErrTherapistNotFound
			}
			uc.logger.Error("CreateBooking: failed to get therapist id=%d: %v", *req.TherapistID, err)
			return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
		}
	}

	status := domain.StatusConfirmed
	if req.Status != nil {
		status = *req.Status
	}

	var result *domain.Booking

	// 3. Все операции с БД — в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Разрешаем клиента (поиск по телефону / реактивация / создание)
		customerID, err := uc.resolveCustomer(txCtx, req)
		if err != nil {
			return err
		}

		// 3.2. Агрегируем длительность: разрешаем все услуги, частичное разрешение — ошибка
		totalMinutes, err := uc.aggregateDuration(txCtx, req.ServiceIDs)
		if err != nil {
			return err
		}

		endTime := req.StartTime.Add(time.Duration(totalMinutes) * time.Minute)

		// 3.3. Независимые проверки пересечений по мастеру и по кабинету
		if err := uc.checkConflicts(txCtx, req.TherapistID, req.RoomID, req.StartTime, endTime, nil); err != nil {
			return err
		}

		// 3.4. Создаем бронирование вместе с позициями
		booking := &domain.Booking{
			BranchID:    req.BranchID,
			CustomerID:  customerID,
			TherapistID: req.TherapistID,
			RoomID:      req.RoomID,
			ServiceIDs:  req.ServiceIDs,
			StartTime:   req.StartTime,
			EndTime:     endTime,
			Status:      status,
			CreatedBy:   req.Actor.UserID,
			Notes:       req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигрыш гонки SERIALIZABLE транзакций — конфликт, а не сбой
		if errors.Is(err, txmanager.ErrSerializationConflict) {
			uc.logger.Warn("CreateBooking: lost serialization race: %v", err)
			return nil, ErrBookingConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d [%s, %s)",
		result.ID, result.StartTime.Format(time.RFC3339), result.EndTime.Format(time.RFC3339))

	return toResponse(result), nil
}

// resolveCustomer разрешает клиента бронирования
// Если указан customerID — клиент должен существовать.
// Если переданы данные нового клиента — сначала поиск по телефону (включая
// soft-deleted): найденный неактивный клиент реактивируется, отсутствующий создается
func (uc *UseCase) resolveCustomer(ctx context.Context, req *Request) (int64, error) {
	if req.CustomerID != nil {
		customer, err := uc.customerRepo.GetByID(ctx, *req.CustomerID)
		if err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				uc.logger.Warn("CreateBooking: customer id=%d not found", *req.CustomerID)
				return 0, ErrCustomerNotFound
			}
			uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", *req.CustomerID, err)
			return 0, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}
		return customer.ID, nil
	}

	existing, err := uc.customerRepo.GetByPhone(ctx, req.NewCustomer.Phone)
	if err != nil && !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		uc.logger.Error("CreateBooking: failed to lookup customer by phone: %v", err)
		return 0, fmt.Errorf("%w: failed to lookup customer: %v", ErrInternal, err)
	}

	if existing != nil {
		if !existing.IsActive {
			// Явная реактивация: вернувшийся клиент переиспользуется, а не дублируется
			if err := uc.customerRepo.Reactivate(ctx, existing.ID, req.NewCustomer.Name); err != nil {
				uc.logger.Error("CreateBooking: failed to reactivate customer id=%d: %v", existing.ID, err)
				return 0, fmt.Errorf("%w: failed to reactivate customer: %v", ErrInternal, err)
			}
			uc.logger.Info("CreateBooking: reactivated customer id=%d by phone match", existing.ID)
		}
		return existing.ID, nil
	}

	created, err := uc.customerRepo.Create(ctx, &domain.Customer{
		Name:     req.NewCustomer.Name,
		Phone:    req.NewCustomer.Phone,
		IsActive: true,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create customer: %v", err)
		return 0, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created customer id=%d", created.ID)
	return created.ID, nil
}

// aggregateDuration разрешает услуги и возвращает суммарную длительность в минутах
// Количество разрешенных услуг должно совпадать с запрошенным — иначе ErrServiceNotFound
func (uc *UseCase) aggregateDuration(ctx context.Context, serviceIDs []int64) (int, error) {
	services, err := uc.serviceRepo.GetByIDs(ctx, serviceIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get services: %v", err)
		return 0, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	if len(services) != len(serviceIDs) {
		uc.logger.Warn("CreateBooking: resolved %d of %d services", len(services), len(serviceIDs))
		return 0, ErrServiceNotFound
	}

	for _, svc := range services {
		if !svc.IsActive {
			uc.logger.Warn("CreateBooking: service id=%d is inactive", svc.ID)
			return 0, ErrServiceInactive
		}
	}

	return domain.TotalDurationMinutes(services), nil
}

// checkConflicts выполняет две независимые проверки пересечений: по мастеру и по кабинету
// Бронирование без мастера и кабинета проходит обе проверки тривиально
func (uc *UseCase) checkConflicts(
	ctx context.Context,
	therapistID, roomID *int64,
	startTime, endTime time.Time,
	excludeBookingID *int64,
) error {
	if therapistID != nil {
		overlapping, err := uc.bookingRepo.FindOverlapping(ctx, domain.OverlapFilter{
			TherapistID:      therapistID,
			StartTime:        startTime,
			EndTime:          endTime,
			ExcludeBookingID: excludeBookingID,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: therapist overlap query failed: %v", err)
			return fmt.Errorf("%w: therapist overlap query: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: therapist id=%d has %d overlapping bookings", *therapistID, len(overlapping))
			return ErrTherapistUnavailable
		}
	}

	if roomID != nil {
		overlapping, err := uc.bookingRepo.FindOverlapping(ctx, domain.OverlapFilter{
			RoomID:           roomID,
			StartTime:        startTime,
			EndTime:          endTime,
			ExcludeBookingID: excludeBookingID,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: room overlap query failed: %v", err)
			return fmt.Errorf("%w: room overlap query: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: room id=%d has %d overlapping bookings", *roomID, len(overlapping))
			return ErrRoomUnavailable
		}
	}

	return nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		BranchID:        b.BranchID,
		CustomerID:      b.CustomerID,
		TherapistID:     b.TherapistID,
		RoomID:          b.RoomID,
		ServiceIDs:      b.ServiceIDs,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		DurationMinutes: int(b.EndTime.Sub(b.StartTime) / time.Minute),
		Status:          string(b.Status),
		CreatedBy:       b.CreatedBy,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
