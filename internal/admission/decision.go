package admission

import "github.com/m04kA/SMC-CoworkingService/internal/domain"

// Decision результат допуска бронирования
type Decision string

const (
	DecisionAccept     Decision = "accept"
	DecisionPending    Decision = "pending"
	DecisionRejectFull Decision = "reject_full"
)

// RequiresApproval возвращает true, если бронирование ждет решения хоста
func (d Decision) RequiresApproval() bool {
	return d == DecisionPending
}

// IsRejected возвращает true для отказа по вместимости
func (d Decision) IsRejected() bool {
	return d == DecisionRejectFull
}

// BookingStatus статус, с которым создается бронирование при этом решении
func (d Decision) BookingStatus() domain.BookingStatus {
	switch d {
	case DecisionAccept:
		return domain.StatusConfirmed
	case DecisionPending:
		return domain.StatusPending
	default:
		return domain.StatusRejected
	}
}

// Resolve классифицирует запрос по конфигурации вместимости и текущей занятости
//
//	вместимость не ограничена     -> accept, либо pending при ручном подтверждении
//	activeCount + guests > max    -> pending при request_approval_at_capacity, иначе reject_full
//	в пределах вместимости        -> accept при автоматическом бронировании, иначе pending
func Resolve(cfg domain.AreaConfig, activeCount, requestedGuestCount int) Decision {
	if cfg.MaxCapacity == nil {
		if cfg.AutomaticBookingEnabled {
			return DecisionAccept
		}
		return DecisionPending
	}

	projected := activeCount + requestedGuestCount
	if projected > *cfg.MaxCapacity {
		if cfg.RequestApprovalAtCapacity {
			return DecisionPending
		}
		return DecisionRejectFull
	}

	if cfg.AutomaticBookingEnabled {
		return DecisionAccept
	}
	return DecisionPending
}
