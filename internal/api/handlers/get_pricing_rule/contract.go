package get_pricing_rule

import (
	"context"

	"github.com/m04kA/SMC-CoworkingService/internal/service/pricingrules/models"
)

type PricingRuleService interface {
	GetActive(ctx context.Context, areaID int64) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
