package create_checkout

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountActive(ctx context.Context, areaID int64, start, end time.Time, excludeID *int64) (int, error)
}

// PricingRuleRepository интерфейс репозитория правил ценообразования
type PricingRuleRepository interface {
	GetCurrentByAreaID(ctx context.Context, areaID int64) (*domain.PricingRule, error)
}

// AreaConfigProvider источник конфигурации вместимости зоны (SpaceService)
type AreaConfigProvider interface {
	GetAreaConfig(ctx context.Context, areaID int64) (*domain.AreaConfig, error)
}

// PriceEvaluator вычислитель цены по правилу
type PriceEvaluator interface {
	EvaluatePriceRule(def domain.RuleDefinition, in pricing.EvaluationInput) pricing.PriceResult
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики решений по бронированию
type Metrics interface {
	RecordCheckoutDecision(decision string)
	RecordPricingEvaluation(branch string, priced bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
