package rulecache

import (
	"context"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// RuleRepository источник правил, который оборачивает кэш
type RuleRepository interface {
	GetCurrentByAreaID(ctx context.Context, areaID int64) (*domain.PricingRule, error)
	Save(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// CachedRepository читает правила через кэш
// Ошибки кэша не прерывают чтение: запрос уходит в репозиторий
type CachedRepository struct {
	repo   RuleRepository
	cache  Cache
	logger Logger
}

// NewCachedRepository создает репозиторий с кэшированием
func NewCachedRepository(repo RuleRepository, cache Cache, logger Logger) *CachedRepository {
	return &CachedRepository{repo: repo, cache: cache, logger: logger}
}

// GetCurrentByAreaID возвращает правило зоны из кэша или репозитория
func (r *CachedRepository) GetCurrentByAreaID(ctx context.Context, areaID int64) (*domain.PricingRule, error) {
	rule, ok, err := r.cache.Get(ctx, areaID)
	if err != nil {
		r.logger.Warn("rulecache: get area_id=%d: %v", areaID, err)
	}
	if ok {
		return rule, nil
	}

	rule, err = r.repo.GetCurrentByAreaID(ctx, areaID)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, rule); err != nil {
		r.logger.Warn("rulecache: set area_id=%d: %v", areaID, err)
	}
	return rule, nil
}

// Save сохраняет правило в репозиторий
// Кэш не трогается: Save выполняется внутри транзакции, инвалидация делается после коммита через Invalidate
func (r *CachedRepository) Save(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	return r.repo.Save(ctx, rule)
}

// Invalidate удаляет правило зоны из кэша после сохранения версии version
// Чтение, начавшееся до сохранения, не вернет в кэш старую версию
func (r *CachedRepository) Invalidate(ctx context.Context, areaID int64, version int) error {
	return r.cache.Invalidate(ctx, areaID, version)
}
