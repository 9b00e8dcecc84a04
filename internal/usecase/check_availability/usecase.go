package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// UseCase use case для проверки доступности мастера и кабинета на интервале
//
// Выполняется обычными чтениями без транзакции: результат носит
// информационный характер, единственным источником истины остается
// проверка внутри SERIALIZABLE транзакции при создании/переносе
type UseCase struct {
	bookingRepo BookingRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, serviceRepo ServiceRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 1. Разрешаем услуги и считаем производное время окончания
	services, err := uc.serviceRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	if len(services) != len(req.ServiceIDs) {
		uc.logger.Warn("CheckAvailability: resolved %d of %d services", len(services), len(req.ServiceIDs))
		return nil, ErrServiceNotFound
	}
	for _, svc := range services {
		if !svc.IsActive {
			uc.logger.Warn("CheckAvailability: service id=%d is inactive", svc.ID)
			return nil, ErrServiceInactive
		}
	}

	totalMinutes := domain.TotalDurationMinutes(services)
	endTime := req.StartTime.Add(time.Duration(totalMinutes) * time.Minute)

	resp := &Response{
		Available:       true,
		StartTime:       req.StartTime,
		EndTime:         endTime,
		DurationMinutes: totalMinutes,
	}

	// 2. Независимые проверки пересечений по каждому ресурсу
	if req.TherapistID != nil {
		overlapping, err := uc.bookingRepo.FindOverlapping(ctx, domain.OverlapFilter{
			TherapistID:      req.TherapistID,
			StartTime:        req.StartTime,
			EndTime:          endTime,
			ExcludeBookingID: req.ExcludeBookingID,
		})
		if err != nil {
			uc.logger.Error("CheckAvailability: therapist overlap query failed: %v", err)
			return nil, fmt.Errorf("%w: therapist overlap query: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			resp.Available = false
			resp.TherapistUnavailable = true
		}
	}

	if req.RoomID != nil {
		overlapping, err := uc.bookingRepo.FindOverlapping(ctx, domain.OverlapFilter{
			RoomID:           req.RoomID,
			StartTime:        req.StartTime,
			EndTime:          endTime,
			ExcludeBookingID: req.ExcludeBookingID,
		})
		if err != nil {
			uc.logger.Error("CheckAvailability: room overlap query failed: %v", err)
			return nil, fmt.Errorf("%w: room overlap query: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			resp.Available = false
			resp.RoomUnavailable = true
		}
	}

	uc.logger.Info("CheckAvailability: branch=%d available=%t [%s, %s)",
		req.BranchID, resp.Available, resp.StartTime.Format(time.RFC3339), resp.EndTime.Format(time.RFC3339))

	return resp, nil
}
