package pricingrules

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-CoworkingService/internal/infra/storage/pricingrule"
	spaceClient "github.com/m04kA/SMC-CoworkingService/internal/integrations/spaceservice"
	"github.com/m04kA/SMC-CoworkingService/internal/service/pricingrules/models"
)

// Service сервис управления правилами ценообразования зон
type Service struct {
	ruleRepo    RuleRepository
	cache       RuleCache
	validator   RuleValidator
	areaConfigs AreaConfigProvider
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(
	ruleRepo RuleRepository,
	cache RuleCache,
	validator RuleValidator,
	areaConfigs AreaConfigProvider,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:    ruleRepo,
		cache:       cache,
		validator:   validator,
		areaConfigs: areaConfigs,
		txManager:   txManager,
		logger:      logger,
	}
}

// Validate проверяет описание правила без сохранения
func (s *Service) Validate(def domain.RuleDefinition) *models.ValidationResponse {
	result := s.validator.Validate(def)
	if !result.Valid {
		s.logger.Info("Validate: rule %q has %d problem(s)", def.Name, len(result.Errors))
	}
	return models.FromValidationResult(result)
}

// GetActive возвращает текущее правило зоны
// Публичный метод - доступен всем
func (s *Service) GetActive(ctx context.Context, areaID int64) (*models.RuleResponse, error) {
	if areaID <= 0 {
		return nil, fmt.Errorf("%w: areaID must be positive", ErrInvalidInput)
	}

	rule, err := s.ruleRepo.GetCurrentByAreaID(ctx, areaID)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("GetActive: area id=%d has no pricing rule", areaID)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("GetActive: repository error for area id=%d: %v", areaID, err)
		return nil, fmt.Errorf("%w: GetActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRule(rule), nil
}

// Save сохраняет новую версию правила зоны, предыдущая версия деактивируется
// Доступно только хостам зоны; невалидное описание возвращается как *ValidationFailedError
func (s *Service) Save(ctx context.Context, req *models.SaveRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Save: saving pricing rule %q for area=%d by user=%d", req.Definition.Name, req.AreaID, req.UserID)

	// 1. Валидируем входные данные
	if req.AreaID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: areaID and userID must be positive", ErrInvalidInput)
	}

	assignConditionIDs(req.Definition.Conditions)

	result := s.validator.Validate(req.Definition)
	if !result.Valid {
		s.logger.Warn("Save: rule for area=%d is invalid: %d problem(s)", req.AreaID, len(result.Errors))
		return nil, &ValidationFailedError{Result: result}
	}

	// 2. Проверяем права доступа (только хост зоны)
	cfg, err := s.areaConfigs.GetAreaConfig(ctx, req.AreaID)
	if err != nil {
		if errors.Is(err, spaceClient.ErrAreaNotFound) {
			s.logger.Warn("Save: area id=%d not found", req.AreaID)
			return nil, ErrAreaNotFound
		}
		s.logger.Error("Save: failed to get area config id=%d: %v", req.AreaID, err)
		return nil, fmt.Errorf("%w: failed to get area config: %v", ErrInternal, err)
	}
	if !cfg.IsHost(req.UserID) {
		s.logger.Warn("Save: user=%d is not a host of area=%d", req.UserID, req.AreaID)
		return nil, ErrAccessDenied
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	// 3. Сохраняем в транзакции: деактивация предыдущих версий и вставка новой
	var saved *domain.PricingRule
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.ruleRepo.Save(txCtx, &domain.PricingRule{
			AreaID:     req.AreaID,
			Active:     active,
			Definition: req.Definition,
			CreatedBy:  req.UserID,
		})
		if err != nil {
			return fmt.Errorf("%w: Save - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Save: failed to save rule for area=%d: %v", req.AreaID, err)
		return nil, err
	}

	// 4. Сбрасываем кэш после коммита
	if err := s.cache.Invalidate(ctx, req.AreaID, saved.Version); err != nil {
		s.logger.Warn("Save: failed to invalidate cached rule for area=%d: %v", req.AreaID, err)
	}

	s.logger.Info("Save: area=%d now uses rule id=%d version=%d", req.AreaID, saved.ID, saved.Version)
	return models.FromDomainRule(saved), nil
}

// assignConditionIDs проставляет идентификаторы условиям, сохраненным без них
func assignConditionIDs(conditions []domain.Condition) {
	for i := range conditions {
		if conditions[i].ID == "" {
			conditions[i].ID = uuid.NewString()
		}
	}
}
