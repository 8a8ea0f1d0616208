package rulecache

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// entry без правила (hasRule=false) хранит только версию после инвалидации
type entry struct {
	rule     domain.PricingRule
	hasRule  bool
	version  int
	cachedAt time.Time
}

func (c *InMemoryCache) expired(e entry) bool {
	return c.config.TTL > 0 && c.now().Sub(e.cachedAt) > c.config.TTL
}

// InMemoryCache потокобезопасный кэш в памяти процесса
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[int64]entry
	config  Config
	now     func() time.Time
}

// NewInMemoryCache создает кэш в памяти
func NewInMemoryCache(config Config) *InMemoryCache {
	return &InMemoryCache{
		entries: make(map[int64]entry),
		config:  config,
		now:     time.Now,
	}
}

// Get возвращает копию правила, чтобы вызывающий код не изменял содержимое кэша
func (c *InMemoryCache) Get(_ context.Context, areaID int64) (*domain.PricingRule, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[areaID]
	c.mu.RUnlock()

	if !ok || !e.hasRule || c.expired(e) {
		return nil, false, nil
	}

	rule := e.rule
	return &rule, true, nil
}

// Set сохраняет правило, если кэш не знает более новой версии
func (c *InMemoryCache) Set(_ context.Context, rule *domain.PricingRule) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store(rule.AreaID, entry{rule: *rule, hasRule: true, version: rule.Version, cachedAt: c.now()})
	return nil
}

// Invalidate удаляет правило зоны, оставляя отметку о версии
func (c *InMemoryCache) Invalidate(_ context.Context, areaID int64, version int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store(areaID, entry{version: version, cachedAt: c.now()})
	return nil
}

// store вызывается под c.mu
func (c *InMemoryCache) store(areaID int64, next entry) {
	if cur, ok := c.entries[areaID]; ok && !c.expired(cur) && cur.version > next.version {
		return
	}
	c.entries[areaID] = next
}
