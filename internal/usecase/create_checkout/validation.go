package create_checkout

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.AreaID <= 0 {
		return fmt.Errorf("%w: areaID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	if req.GuestCount < domain.MinGuestCount {
		return fmt.Errorf("%w: guestCount must be at least %d", ErrInvalidInput, domain.MinGuestCount)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateStart проверяет, что бронирование начинается не в прошлом
func validateStart(startAt, now time.Time) error {
	if startAt.Before(now) {
		return ErrStartInPast
	}
	return nil
}

// validateGuestCount жесткое ограничение: гостей не больше вместимости зоны, независимо от решения допуска
func validateGuestCount(cfg *domain.AreaConfig, guests int) error {
	if cfg.MaxCapacity != nil && guests > *cfg.MaxCapacity {
		return fmt.Errorf("%w: %d guests requested, area holds %d", ErrGuestCountExceedsCapacity, guests, *cfg.MaxCapacity)
	}
	return nil
}

// validateLeadTime проверяет минимальный срок бронирования заранее
func validateLeadTime(cfg *domain.AreaConfig, startAt, now time.Time) error {
	if cfg.LeadTime == nil || cfg.LeadTime.Amount == 0 {
		return nil
	}

	earliest, err := cfg.LeadTime.EarliestStart(now)
	if err != nil {
		return fmt.Errorf("%w: invalid lead time configuration: %v", ErrInternal, err)
	}

	if startAt.Before(earliest) {
		return fmt.Errorf("%w: must book at least %d %s in advance", ErrLeadTimeNotMet, cfg.LeadTime.Amount, cfg.LeadTime.Unit)
	}
	return nil
}
