package spaceservice

import (
	"fmt"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// Area модель зоны коворкинга из SpaceService
type Area struct {
	ID                        int64          `json:"id"`
	SpaceID                   int64          `json:"space_id"`
	Name                      string         `json:"name"`
	MaxCapacity               *int           `json:"max_capacity"` // null = без ограничения
	AutomaticBookingEnabled   bool           `json:"automatic_booking_enabled"`
	RequestApprovalAtCapacity bool           `json:"request_approval_at_capacity"`
	AdvanceBooking            *AdvanceWindow `json:"advance_booking"`
	HostIDs                   []int64        `json:"host_ids"`
}

// AdvanceWindow минимальный срок бронирования заранее
type AdvanceWindow struct {
	Amount int    `json:"amount"`
	Unit   string `json:"unit"` // days, weeks, months
}

// ToDomain преобразует ответ SpaceService в конфигурацию вместимости
func (a *Area) ToDomain() (*domain.AreaConfig, error) {
	cfg := &domain.AreaConfig{
		AreaID:                    a.ID,
		SpaceID:                   a.SpaceID,
		MaxCapacity:               a.MaxCapacity,
		AutomaticBookingEnabled:   a.AutomaticBookingEnabled,
		RequestApprovalAtCapacity: a.RequestApprovalAtCapacity,
		HostIDs:                   a.HostIDs,
	}

	if a.MaxCapacity != nil && *a.MaxCapacity < 0 {
		return nil, fmt.Errorf("%w: negative max_capacity %d for area %d", ErrInvalidResponse, *a.MaxCapacity, a.ID)
	}

	if a.AdvanceBooking != nil && a.AdvanceBooking.Amount > 0 {
		unit := domain.LeadTimeUnit(a.AdvanceBooking.Unit)
		switch unit {
		case domain.LeadTimeDays, domain.LeadTimeWeeks, domain.LeadTimeMonths:
		default:
			return nil, fmt.Errorf("%w: unknown advance booking unit %q for area %d", ErrInvalidResponse, a.AdvanceBooking.Unit, a.ID)
		}
		cfg.LeadTime = &domain.LeadTime{Amount: a.AdvanceBooking.Amount, Unit: unit}
	}

	return cfg, nil
}

// ErrorResponse модель ошибки от SpaceService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
