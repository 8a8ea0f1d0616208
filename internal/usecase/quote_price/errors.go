package quote_price

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrPricingRuleNotFound возвращается, когда у зоны нет правила ценообразования
	ErrPricingRuleNotFound = errors.New("quote_price: pricing rule not found")

	// ErrPricingRuleInactive возвращается, когда правило зоны отключено
	ErrPricingRuleInactive = errors.New("quote_price: pricing rule is not active")

	// ErrPricingUnavailable возвращается, когда цену вычислить не удалось
	ErrPricingUnavailable = errors.New("quote_price: unable to compute price")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
