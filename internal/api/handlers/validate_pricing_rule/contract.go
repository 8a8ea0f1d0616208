package validate_pricing_rule

import (
	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	"github.com/m04kA/SMC-CoworkingService/internal/service/pricingrules/models"
)

type PricingRuleService interface {
	Validate(def domain.RuleDefinition) *models.ValidationResponse
}

type Logger interface {
	Warn(format string, v ...interface{})
}
