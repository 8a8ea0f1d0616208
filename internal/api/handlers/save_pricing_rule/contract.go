package save_pricing_rule

import (
	"context"

	"github.com/m04kA/SMC-CoworkingService/internal/service/pricingrules/models"
)

type PricingRuleService interface {
	Save(ctx context.Context, req *models.SaveRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
