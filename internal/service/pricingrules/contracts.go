package pricingrules

import (
	"context"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing"
)

// RuleRepository интерфейс репозитория правил ценообразования
type RuleRepository interface {
	GetCurrentByAreaID(ctx context.Context, areaID int64) (*domain.PricingRule, error)
	Save(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
}

// RuleCache кэш действующих правил
type RuleCache interface {
	Invalidate(ctx context.Context, areaID int64, version int) error
}

// RuleValidator проверка описания правила
type RuleValidator interface {
	Validate(def domain.RuleDefinition) pricing.ValidationResult
}

// AreaConfigProvider источник конфигурации зоны (список хостов)
type AreaConfigProvider interface {
	GetAreaConfig(ctx context.Context, areaID int64) (*domain.AreaConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
