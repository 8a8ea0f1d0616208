package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CoworkingService/internal/admission"
	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	spaceClient "github.com/m04kA/SMC-CoworkingService/internal/integrations/spaceservice"
)

// UseCase use case получения занятости зоны на интервал
type UseCase struct {
	bookingRepo BookingRepository
	areaConfigs AreaConfigProvider
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, areaConfigs AreaConfigProvider, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		areaConfigs: areaConfigs,
		logger:      logger,
	}
}

// Execute считает активные бронирования на интервале и прогнозирует решение для GuestCount гостей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	cfg, err := uc.areaConfigs.GetAreaConfig(ctx, req.AreaID)
	if err != nil {
		if errors.Is(err, spaceClient.ErrAreaNotFound) {
			return nil, ErrAreaNotFound
		}
		uc.logger.Error("GetAvailability: failed to get area config id=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: failed to get area config: %v", ErrInternal, err)
	}

	activeCount, err := uc.bookingRepo.CountActive(ctx, req.AreaID, req.StartAt, req.EndAt, nil)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to count active bookings for area id=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: failed to count active bookings: %v", ErrInternal, err)
	}

	resp := &Response{
		Availability: domain.Availability{
			AreaID:      req.AreaID,
			StartAt:     req.StartAt,
			EndAt:       req.EndAt,
			ActiveCount: activeCount,
			MaxCapacity: cfg.MaxCapacity,
		},
	}

	if req.GuestCount > 0 {
		decision := admission.Resolve(*cfg, activeCount, req.GuestCount)
		resp.Decision = &decision
	}

	uc.logger.Info("GetAvailability: area=%d active=%d", req.AreaID, activeCount)
	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AreaID <= 0 {
		return fmt.Errorf("%w: areaID must be positive", ErrInvalidInput)
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}
	if req.GuestCount < 0 {
		return fmt.Errorf("%w: guests must not be negative", ErrInvalidInput)
	}
	return nil
}
