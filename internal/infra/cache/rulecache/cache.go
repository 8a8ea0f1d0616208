package rulecache

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

// Cache кэш действующих правил ценообразования по зонам
// Реализации: InMemoryCache (один инстанс) и RedisCache (общий для реплик)
type Cache interface {
	// Get возвращает правило зоны; ok=false при промахе или истекшем TTL
	Get(ctx context.Context, areaID int64) (rule *domain.PricingRule, ok bool, err error)

	// Set сохраняет правило зоны
	// Правило с версией ниже уже известной кэшу не записывается
	Set(ctx context.Context, rule *domain.PricingRule) error

	// Invalidate удаляет правило зоны и запоминает версию сохраненного правила:
	// последующие Set с более старой версией игнорируются
	Invalidate(ctx context.Context, areaID int64, version int) error
}

// Config параметры кэша
type Config struct {
	// TTL время жизни записи; 0 - без истечения, только инвалидация при сохранении
	TTL time.Duration

	// KeyPrefix префикс ключей Redis
	KeyPrefix string
}

// DefaultKeyPrefix префикс ключей по умолчанию
const DefaultKeyPrefix = "coworking:pricing-rule:"

// DefaultConfig значения по умолчанию
func DefaultConfig() Config {
	return Config{
		TTL:       5 * time.Minute,
		KeyPrefix: DefaultKeyPrefix,
	}
}
