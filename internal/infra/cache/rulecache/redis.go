package rulecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// RedisCache кэш правил в Redis, общий для всех реплик сервиса
type RedisCache struct {
	client redis.Cmdable
	config Config
}

// NewRedisCache создает кэш поверх клиента Redis
func NewRedisCache(client redis.Cmdable, config Config) *RedisCache {
	if config.KeyPrefix == "" {
		config.KeyPrefix = DefaultKeyPrefix
	}
	return &RedisCache{client: client, config: config}
}

// record формат хранения правила в Redis
type record struct {
	ID         int64                 `json:"id"`
	AreaID     int64                 `json:"areaId"`
	Version    int                   `json:"version"`
	Active     bool                  `json:"active"`
	Definition domain.RuleDefinition `json:"definition"`
	CreatedBy  int64                 `json:"createdBy"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`

	// Tombstone отметка инвалидации: правила нет, хранится только версия
	Tombstone bool `json:"tombstone,omitempty"`
}

// setIfNotOlderScript записывает значение, если в ключе нет записи с большей версией
// KEYS[1] ключ, ARGV[1] значение, ARGV[2] версия, ARGV[3] TTL в мс (0 - без TTL)
const setIfNotOlderScript = `
local cur = redis.call('GET', KEYS[1])
if cur then
	local ok, rec = pcall(cjson.decode, cur)
	if ok and type(rec) == 'table' and tonumber(rec['version']) ~= nil
		and tonumber(rec['version']) > tonumber(ARGV[2]) then
		return 0
	end
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`

func (c *RedisCache) key(areaID int64) string {
	return c.config.KeyPrefix + strconv.FormatInt(areaID, 10)
}

// Get читает правило зоны
func (c *RedisCache) Get(ctx context.Context, areaID int64) (*domain.PricingRule, bool, error) {
	data, err := c.client.Get(ctx, c.key(areaID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get area %d: %v", ErrCacheUnavailable, areaID, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("%w: area %d: %v", ErrCorruptedEntry, areaID, err)
	}
	if rec.Tombstone {
		return nil, false, nil
	}

	return &domain.PricingRule{
		ID:         rec.ID,
		AreaID:     rec.AreaID,
		Version:    rec.Version,
		Active:     rec.Active,
		Definition: rec.Definition,
		CreatedBy:  rec.CreatedBy,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}, true, nil
}

// Set сохраняет правило с TTL из конфигурации, если в Redis нет более новой версии
func (c *RedisCache) Set(ctx context.Context, rule *domain.PricingRule) error {
	return c.setIfNotOlder(ctx, rule.AreaID, record{
		ID:         rule.ID,
		AreaID:     rule.AreaID,
		Version:    rule.Version,
		Active:     rule.Active,
		Definition: rule.Definition,
		CreatedBy:  rule.CreatedBy,
		CreatedAt:  rule.CreatedAt,
		UpdatedAt:  rule.UpdatedAt,
	})
}

// Invalidate заменяет правило зоны отметкой с версией сохраненного правила
func (c *RedisCache) Invalidate(ctx context.Context, areaID int64, version int) error {
	return c.setIfNotOlder(ctx, areaID, record{AreaID: areaID, Version: version, Tombstone: true})
}

func (c *RedisCache) setIfNotOlder(ctx context.Context, areaID int64, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: marshal area %d: %v", ErrCorruptedEntry, areaID, err)
	}

	err = c.client.Eval(ctx, setIfNotOlderScript, []string{c.key(areaID)},
		string(data), rec.Version, c.config.TTL.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("%w: set area %d: %v", ErrCacheUnavailable, areaID, err)
	}
	return nil
}
