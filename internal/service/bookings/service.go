package bookings

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoworkingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	areaConfigs AreaConfigProvider
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	areaConfigs AreaConfigProvider,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		areaConfigs: areaConfigs,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть своё бронирование
// или бронирование зоны, хостом которой он является
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя
// Пользователь видит только свои бронирования, userID берется из аутентификации
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetAreaBookings получает бронирования зоны с фильтрацией
// Доступно только хостам зоны. Без фильтра по статусу возвращаются активные бронирования,
// status=pending дает очередь на рассмотрение
func (s *Service) GetAreaBookings(ctx context.Context, req *models.GetAreaBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetAreaBookings: fetching bookings for area=%d, user=%d", req.AreaID, req.UserID)
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", domain.FormatDateTime(*req.From), domain.FormatDateTime(*req.To))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info("%s", logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAreaBookings: invalid filter for area=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.checkHostAccess(ctx, req.AreaID, req.UserID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByAreaWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAreaBookings: repository error for area=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: GetAreaBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAreaBookings: successfully fetched %d bookings for area=%d", len(bookings), req.AreaID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменить можно только своё бронирование в статусе pending или confirmed
// Строка блокируется на время проверки статуса, чтобы не отменить уже рассмотренное хостом бронирование
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if req.CancellationReason != nil && utf8.RuneCountInString(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Cancel: booking id=%d: %v", bookingID, err)
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if booking.UserID == userID {
		return nil
	}

	return s.checkHostAccess(ctx, booking.AreaID, userID)
}

// checkHostAccess проверяет, что пользователь является хостом зоны
// Ошибка space-сервиса трактуется как отказ в доступе
func (s *Service) checkHostAccess(ctx context.Context, areaID int64, userID int64) error {
	cfg, err := s.areaConfigs.GetAreaConfig(ctx, areaID)
	if err != nil {
		s.logger.Error("checkHostAccess: failed to get area config id=%d: %v", areaID, err)
		return ErrAccessDenied
	}

	if !cfg.IsHost(userID) {
		s.logger.Warn("checkHostAccess: user=%d is not a host of area=%d", userID, areaID)
		return ErrAccessDenied
	}
	return nil
}
