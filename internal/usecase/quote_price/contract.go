package quote_price

import (
	"context"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing"
)

// PricingRuleRepository интерфейс репозитория правил ценообразования
type PricingRuleRepository interface {
	GetCurrentByAreaID(ctx context.Context, areaID int64) (*domain.PricingRule, error)
}

// PriceEvaluator вычислитель цены по правилу
type PriceEvaluator interface {
	EvaluatePriceRule(def domain.RuleDefinition, in pricing.EvaluationInput) pricing.PriceResult
}

// Metrics метрики вычисления цены
type Metrics interface {
	RecordPricingEvaluation(branch string, priced bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
