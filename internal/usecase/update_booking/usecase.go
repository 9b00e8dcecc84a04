package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	staffClient "github.com/m04kA/SMC-SalonService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// UseCase use case для частичного обновления бронирования
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

// Execute выполняет use case обновления бронирования
//
// Если меняется время начала, список услуг, мастер или кабинет — end_time
// пересчитывается и проверка пересечений выполняется заново, исключая само
// бронирование из поиска (бронирование не конфликтует с собой). Если ни одно
// из этих полей не меняется, проверка пропускается.
// Чтение и запись — в одной SERIALIZABLE транзакции, как и при создании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: actor=%d booking=%d", req.Actor.UserID, req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// Перенести бронирование на прошедшее время нельзя
	if req.StartTime != nil && req.StartTime.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("UpdateBooking: start time %s is in the past", req.StartTime.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: startTime must not be in the past", ErrInvalidInput)
	}

	// 2. Читаем бронирование для проверок доступа и внешних вызовов (до транзакции)
	existing, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !req.Actor.CanManageBranch(existing.BranchID) {
		uc.logger.Warn("UpdateBooking: access denied for actor=%d to booking id=%d", req.Actor.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 3. Новый мастер должен существовать в филиале бронирования
	if req.TherapistID != nil {
		if _, err := uc.staffClient.GetEmployee(ctx, existing.BranchID, *req.TherapistID); err != nil {
			if errors.Is(err, staffClient.ErrEmployeeNotFound) {
				uc.logger.Warn("UpdateBooking: therapist id=%d not found in branch=%d", *req.TherapistID, existing.BranchID)
				return nil, ErrTherapistNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get therapist id=%d: %v", *req.TherapistID, err)
			return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
		}
	}

	// 4. Новый клиент должен существовать
	if req.CustomerID != nil {
		if _, err := uc.customerRepo.GetByID(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				uc.logger.Warn("UpdateBooking: customer id=%d not found", *req.CustomerID)
				return nil, ErrCustomerNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get customer id=%d: %v", *req.CustomerID, err)
			return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}
	}

	var result *domain.Booking

	// 5. Чтение-проверка-запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Перечитываем бронирование внутри транзакции
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to re-read booking: %v", ErrInternal, err)
		}

		plan := buildUpdatePlan(booking, req)

		if plan.intervalChanged && !booking.CanBeUpdated() {
			uc.logger.Warn("UpdateBooking: booking id=%d cannot be rescheduled, status=%s", booking.ID, booking.Status)
			return ErrCannotUpdate
		}

		fields := bookingRepo.UpdateFields{
			CustomerID:  req.CustomerID,
			TherapistID: req.TherapistID,
			RoomID:      req.RoomID,
			Status:      req.Status,
			Notes:       req.Notes,
		}

		if plan.intervalChanged {
			// 5.2. Пересчитываем производное время окончания по актуальному списку услуг
			totalMinutes, err := uc.aggregateDuration(txCtx, plan.serviceIDs)
			if err != nil {
				return err
			}
			endTime := plan.startTime.Add(time.Duration(totalMinutes) * time.Minute)

			// 5.3. Повторная проверка пересечений, исключая само бронирование
			if err := uc.checkConflicts(txCtx, plan.therapistID, plan.roomID, plan.startTime, endTime, booking.ID); err != nil {
				return err
			}

			fields.StartTime = &plan.startTime
			fields.EndTime = &endTime
		}

		if err := uc.bookingRepo.Update(txCtx, booking.ID, fields); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		if plan.servicesChanged {
			if err := uc.bookingRepo.ReplaceServices(txCtx, booking.ID, plan.serviceIDs); err != nil {
				uc.logger.Error("UpdateBooking: failed to replace services for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to replace services: %v", ErrInternal, err)
			}
		}

		// 5.4. Перечитываем итоговое состояние для ответа
		updated, err := uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to read updated booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationConflict) {
			uc.logger.Warn("UpdateBooking: lost serialization race: %v", err)
			return nil, ErrBookingConflict
		}
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d [%s, %s)",
		result.ID, result.StartTime.Format(time.RFC3339), result.EndTime.Format(time.RFC3339))

	return toResponse(result), nil
}

// updatePlan эффективные значения полей, влияющих на интервал,
// и признаки того, что именно изменилось
type updatePlan struct {
	startTime       time.Time
	serviceIDs      []int64
	therapistID     *int64
	roomID          *int64
	servicesChanged bool
	intervalChanged bool
}

// buildUpdatePlan вычисляет эффективные значения: запрошенное поле либо текущее из БД
// Проверка пересечений нужна, только если меняется время начала, список услуг,
// мастер или кабинет — no-op обновления (заметки, статус, клиент) её пропускают
func buildUpdatePlan(booking *domain.Booking, req *Request) updatePlan {
	plan := updatePlan{
		startTime:   booking.StartTime,
		serviceIDs:  booking.ServiceIDs,
		therapistID: booking.TherapistID,
		roomID:      booking.RoomID,
	}

	startChanged := false
	if req.StartTime != nil && !req.StartTime.Equal(booking.StartTime) {
		plan.startTime = *req.StartTime
		startChanged = true
	}

	if req.ServiceIDs != nil && !sameServiceSet(req.ServiceIDs, booking.ServiceIDs) {
		plan.serviceIDs = req.ServiceIDs
		plan.servicesChanged = true
	}

	resourceChanged := false
	if req.TherapistID != nil && !sameOptionalID(req.TherapistID, booking.TherapistID) {
		plan.therapistID = req.TherapistID
		resourceChanged = true
	}
	if req.RoomID != nil && !sameOptionalID(req.RoomID, booking.RoomID) {
		plan.roomID = req.RoomID
		resourceChanged = true
	}

	plan.intervalChanged = startChanged || plan.servicesChanged || resourceChanged
	return plan
}

func sameOptionalID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// aggregateDuration разрешает услуги и возвращает суммарную длительность в минутах
func (uc *UseCase) aggregateDuration(ctx context.Context, serviceIDs []int64) (int, error) {
	services, err := uc.serviceRepo.GetByIDs(ctx, serviceIDs)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to get services: %v", err)
		return 0, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	if len(services) != len(serviceIDs) {
		uc.logger.Warn("UpdateBooking: resolved %d of %d services", len(services), len(serviceIDs))
		return 0, ErrServiceNotFound
	}

	for _, svc := range services {
		if !svc.IsActive {
			uc.logger.Warn("UpdateBooking: service id=%d is inactive", svc.ID)
			return 0, ErrServiceInactive
		}
	}

	return domain.TotalDurationMinutes(services), nil
}

// checkConflicts выполняет независимые проверки пересечений по мастеру и кабинету,
// исключая само обновляемое бронирование из поиска
func (uc *UseCase) checkConflicts(
	ctx context.Context,
	therapistID, roomID *int64,
	startTime, endTime time.Time,
	excludeBookingID int64,
) error {
	if therapistID != nil {
		overlapping, err := uc.bookingRepo.FindOverlapping(ctx, domain.OverlapFilter{
			TherapistID:      therapistID,
			StartTime:        startTime,
			EndTime:          endTime,
			ExcludeBookingID: &excludeBookingID,
		})
		if err != nil {
			uc.logger.Error("UpdateBooking: therapist overlap query failed: %v", err)
			return fmt.Errorf("%w: therapist overlap query: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("UpdateBooking: therapist id=%d has %d overlapping bookings", *therapistID, len(overlapping))
			return ErrTherapistUnavailable
		}
	}

	if roomID != nil {
		overlapping, err := uc.bookingRepo.FindOverlapping(ctx, domain.OverlapFilter{
			RoomID:           roomID,
			StartTime:        startTime,
			EndTime:          endTime,
			ExcludeBookingID: &excludeBookingID,
		})
		if err != nil {
			uc.logger.Error("UpdateBooking: room overlap query failed: %v", err)
			return fmt.Errorf("%w: room overlap query: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("UpdateBooking: room id=%d has %d overlapping bookings", *roomID, len(overlapping))
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
