package review_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/booking"
	spaceClient "github.com/m04kA/SMC-CoworkingService/internal/integrations/spaceservice"
)

// UseCase use case рассмотрения ожидающего бронирования хостом зоны
type UseCase struct {
	bookingRepo BookingRepository
	areaConfigs AreaConfigProvider
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, areaConfigs AreaConfigProvider, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		areaConfigs: areaConfigs,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute одобряет или отклоняет бронирование в статусе pending
//
// При одобрении занятость пересчитывается без самого бронирования (excludeID)
// Превышение вместимости отклоняет одобрение независимо от request_approval_at_capacity
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReviewBooking: booking=%d host=%d action=%s", req.BookingID, req.HostID, req.Action)

	if req.BookingID <= 0 || req.HostID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and hostID must be positive", ErrInvalidInput)
	}
	if req.Action != ActionApprove && req.Action != ActionReject {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	// Бронирование и конфигурация зоны читаются до открытия транзакции, без блокировок
	booking, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		uc.logger.Warn("ReviewBooking: booking id=%d: %v", req.BookingID, err)
		return nil, err
	}

	cfg, err := uc.areaConfigs.GetAreaConfig(ctx, booking.AreaID)
	if err != nil {
		if errors.Is(err, spaceClient.ErrAreaNotFound) {
			return nil, ErrAreaNotFound
		}
		uc.logger.Error("ReviewBooking: failed to get area config id=%d: %v", booking.AreaID, err)
		return nil, fmt.Errorf("%w: failed to get area config: %v", ErrInternal, err)
	}

	if !cfg.IsHost(req.HostID) {
		uc.logger.Warn("ReviewBooking: user=%d is not a host of area=%d", req.HostID, booking.AreaID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeReviewed() {
		uc.logger.Warn("ReviewBooking: booking id=%d has status=%s", booking.ID, booking.Status)
		return nil, ErrNotPending
	}

	var result *Response

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Повторное чтение под FOR UPDATE: статус мог измениться после проверки выше
		booking, err := uc.getBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}

		if !booking.CanBeReviewed() {
			uc.logger.Warn("ReviewBooking: booking id=%d changed to status=%s", booking.ID, booking.Status)
			return ErrNotPending
		}

		status := domain.StatusRejected
		activeCount := 0

		if req.Action == ActionApprove {
			activeCount, err = uc.bookingRepo.CountActive(txCtx, booking.AreaID, booking.StartAt, booking.EndAt, &booking.ID)
			if err != nil {
				return fmt.Errorf("%w: failed to count active bookings: %w", ErrInternal, err)
			}

			if cfg.MaxCapacity != nil && activeCount+booking.GuestCount > *cfg.MaxCapacity {
				uc.logger.Warn("ReviewBooking: booking id=%d does not fit: active=%d guests=%d max=%d",
					booking.ID, activeCount, booking.GuestCount, *cfg.MaxCapacity)
				return ErrCapacityRejected
			}
			status = domain.StatusConfirmed
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, status); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		booking.Status = status
		result = &Response{Booking: booking, ActiveCount: activeCount}
		return nil
	})

	if err != nil {
		uc.logger.Warn("ReviewBooking: booking id=%d: %v", req.BookingID, err)
		return nil, err
	}

	uc.logger.Info("ReviewBooking: booking id=%d is now %s", req.BookingID, result.Booking.Status)
	return result, nil
}

func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}
	return booking, nil
}
