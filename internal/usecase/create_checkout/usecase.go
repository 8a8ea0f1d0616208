package create_checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CoworkingService/internal/admission"
	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/pricingrule"
	spaceClient "github.com/m04kA/SMC-CoworkingService/internal/integrations/spaceservice"
	"github.com/m04kA/SMC-CoworkingService/internal/pricing"
)

// UseCase use case оформления бронирования: цена, допуск по вместимости и создание брони
type UseCase struct {
	bookingRepo  BookingRepository
	ruleRepo     PricingRuleRepository
	areaConfigs  AreaConfigProvider
	evaluator    PriceEvaluator
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ruleRepo PricingRuleRepository,
	areaConfigs AreaConfigProvider,
	evaluator PriceEvaluator,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ruleRepo:     ruleRepo,
		areaConfigs:  areaConfigs,
		evaluator:    evaluator,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет оформление бронирования, прерываясь на первой ошибке
// Подсчет занятости и создание брони выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateCheckout: user=%d, area=%d, start=%s, end=%s, guests=%d",
		req.UserID, req.AreaID, domain.FormatDateTime(req.StartAt), domain.FormatDateTime(req.EndAt), req.GuestCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateCheckout: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Начало бронирования не в прошлом
	if err := validateStart(req.StartAt, now); err != nil {
		uc.logger.Warn("CreateCheckout: start %s is before now %s", domain.FormatDateTime(req.StartAt), domain.FormatDateTime(now))
		return nil, err
	}

	// 3. Конфигурация зоны и жесткое ограничение по числу гостей
	cfg, err := uc.areaConfigs.GetAreaConfig(ctx, req.AreaID)
	if err != nil {
		if errors.Is(err, spaceClient.ErrAreaNotFound) {
			uc.logger.Warn("CreateCheckout: area id=%d not found", req.AreaID)
			return nil, ErrAreaNotFound
		}
		uc.logger.Error("CreateCheckout: failed to get area config id=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: failed to get area config: %v", ErrInternal, err)
	}

	if err := validateGuestCount(cfg, req.GuestCount); err != nil {
		uc.logger.Warn("CreateCheckout: %v", err)
		return nil, err
	}

	// 4. Минимальный срок бронирования заранее
	if err := validateLeadTime(cfg, req.StartAt, now); err != nil {
		uc.logger.Warn("CreateCheckout: lead time check failed: %v", err)
		return nil, err
	}

	// 5. Действующее правило ценообразования
	rule, err := uc.ruleRepo.GetCurrentByAreaID(ctx, req.AreaID)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			uc.logger.Warn("CreateCheckout: area id=%d has no pricing rule", req.AreaID)
			return nil, ErrPricingRuleNotFound
		}
		uc.logger.Error("CreateCheckout: failed to get pricing rule for area id=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: failed to get pricing rule: %v", ErrInternal, err)
	}
	if !rule.Active {
		uc.logger.Warn("CreateCheckout: pricing rule id=%d of area id=%d is inactive", rule.ID, req.AreaID)
		return nil, ErrPricingRuleInactive
	}

	// 6. Вычисление цены; null-цена означает "цена недоступна"
	price := uc.evaluator.EvaluatePriceRule(rule.Definition, pricing.EvaluationInput{
		BookingHours:      pricing.BookingHours(req.StartAt, req.EndAt),
		Now:               req.StartAt,
		VariableOverrides: pricing.CheckoutOverrides(rule.Definition, req.VariableOverrides, req.GuestCount),
	})
	uc.metrics.RecordPricingEvaluation(string(price.Branch), price.Priced())

	// 7. Итоговая сумма: умножаем на число гостей, если формула не учла guest_count сама
	unitPrice, totalPrice, ok := pricing.TotalPrice(price, req.GuestCount)
	if !ok {
		if price.Failure != nil {
			uc.logger.Warn("CreateCheckout: rule id=%d branch=%s failed: %v", rule.ID, price.Branch, price.Failure)
		} else {
			uc.logger.Warn("CreateCheckout: rule id=%d branch=%s defines no price", rule.ID, price.Branch)
		}
		return nil, ErrPricingUnavailable
	}

	// 8. Занятость и решение о допуске атомарно с созданием брони
	var (
		created  *domain.Booking
		decision admission.Decision
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		activeCount, err := uc.bookingRepo.CountActive(txCtx, req.AreaID, req.StartAt, req.EndAt, nil)
		if err != nil {
			uc.logger.Error("CreateCheckout: failed to count active bookings: %v", err)
			return fmt.Errorf("%w: failed to count active bookings: %w", ErrInternal, err)
		}

		decision = admission.Resolve(*cfg, activeCount, req.GuestCount)
		uc.logger.Info("CreateCheckout: area=%d active=%d guests=%d max=%s decision=%s",
			req.AreaID, activeCount, req.GuestCount, formatCapacity(cfg.MaxCapacity), decision)

		if decision.IsRejected() {
			return ErrCapacityRejected
		}

		booking := &domain.Booking{
			AreaID:        req.AreaID,
			UserID:        req.UserID,
			StartAt:       req.StartAt,
			EndAt:         req.EndAt,
			GuestCount:    req.GuestCount,
			Status:        decision.BookingStatus(),
			UnitPrice:     unitPrice,
			TotalPrice:    totalPrice,
			PricingBranch: string(price.Branch),
			PricingRuleID: rule.ID,
			Notes:         req.Notes,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateCheckout: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		return nil
	})

	if decision != "" {
		uc.metrics.RecordCheckoutDecision(string(decision))
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateCheckout: created booking id=%d status=%s total=%s", created.ID, created.Status, totalPrice.StringFixed(2))

	return &Response{
		Booking:          created,
		UnitPrice:        unitPrice,
		TotalPrice:       totalPrice,
		Branch:           price.Branch,
		UsedVariables:    price.UsedVariables,
		Decision:         decision,
		RequiresApproval: decision.RequiresApproval(),
	}, nil
}

func formatCapacity(max *int) string {
	if max == nil {
		return "unlimited"
	}
	return fmt.Sprintf("%d", *max)
}
