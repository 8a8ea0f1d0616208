package create_checkout

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_checkout: invalid input data")

	// ErrStartInPast возвращается, когда начало бронирования в прошлом
	ErrStartInPast = errors.New("create_checkout: start time is in the past")

	// ErrAreaNotFound возвращается, когда зона не найдена
	ErrAreaNotFound = errors.New("create_checkout: area not found")

	// ErrGuestCountExceedsCapacity возвращается, когда гостей больше, чем вмещает зона
	// Такой запрос отклоняется всегда и не уходит на подтверждение хосту
	ErrGuestCountExceedsCapacity = errors.New("create_checkout: guest count exceeds area capacity")

	// ErrLeadTimeNotMet возвращается, когда бронирование создается позже минимального срока
	ErrLeadTimeNotMet = errors.New("create_checkout: minimum advance booking time not met")

	// ErrPricingRuleNotFound возвращается, когда у зоны нет правила ценообразования
	ErrPricingRuleNotFound = errors.New("create_checkout: pricing rule not found")

	// ErrPricingRuleInactive возвращается, когда правило зоны отключено
	ErrPricingRuleInactive = errors.New("create_checkout: pricing rule is not active")

	// ErrPricingUnavailable возвращается, когда цену вычислить не удалось
	ErrPricingUnavailable = errors.New("create_checkout: unable to compute price")

	// ErrCapacityRejected возвращается, когда зона заполнена на запрошенное время
	ErrCapacityRejected = errors.New("create_checkout: area is fully booked for this time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_checkout: internal error")
)
