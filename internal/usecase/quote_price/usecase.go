package quote_price

import (
	"context"
	"errors"
	"fmt"

	ruleRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/pricingrule"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing"
)

// UseCase расчет цены без создания бронирования и без проверки вместимости
type UseCase struct {
	ruleRepo  PricingRuleRepository
	evaluator PriceEvaluator
	metrics   Metrics
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ruleRepo PricingRuleRepository, evaluator PriceEvaluator, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		ruleRepo:  ruleRepo,
		evaluator: evaluator,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute вычисляет цену так же, как при оформлении бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	rule, err := uc.ruleRepo.GetCurrentByAreaID(ctx, req.AreaID)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			uc.logger.Warn("QuotePrice: area id=%d has no pricing rule", req.AreaID)
			return nil, ErrPricingRuleNotFound
		}
		uc.logger.Error("QuotePrice: failed to get pricing rule for area id=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: failed to get pricing rule: %v", ErrInternal, err)
	}
	if !rule.Active {
		return nil, ErrPricingRuleInactive
	}

	hours := pricing.BookingHours(req.StartAt, req.EndAt)
	price := uc.evaluator.EvaluatePriceRule(rule.Definition, pricing.EvaluationInput{
		BookingHours:      hours,
		Now:               req.StartAt,
		VariableOverrides: pricing.CheckoutOverrides(rule.Definition, req.VariableOverrides, req.GuestCount),
	})
	uc.metrics.RecordPricingEvaluation(string(price.Branch), price.Priced())

	unitPrice, totalPrice, ok := pricing.TotalPrice(price, req.GuestCount)
	if !ok {
		uc.logger.Warn("QuotePrice: rule id=%d branch=%s has no price: %v", rule.ID, price.Branch, price.Failure)
		return nil, ErrPricingUnavailable
	}

	uc.logger.Info("QuotePrice: area=%d hours=%d branch=%s total=%s", req.AreaID, hours, price.Branch, totalPrice.StringFixed(2))

	return &Response{
		AreaID:        req.AreaID,
		RuleID:        rule.ID,
		RuleVersion:   rule.Version,
		BookingHours:  hours,
		UnitPrice:     unitPrice,
		TotalPrice:    totalPrice,
		Branch:        price.Branch,
		UsedVariables: price.UsedVariables,
	}, nil
}
