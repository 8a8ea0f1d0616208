package rulecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingService/internal/domain"
)

func testRule(areaID int64) *domain.PricingRule {
	initial := "25"
	return &domain.PricingRule{
		ID:      10,
		AreaID:  areaID,
		Version: 3,
		Active:  true,
		Definition: domain.RuleDefinition{
			Name:      "hourly",
			Variables: []domain.Variable{{Key: "rate", Label: "Rate", Type: domain.TypeNumber, InitialValue: &initial}},
			Conditions: []domain.Condition{{
				ID:         "c1",
				Comparator: domain.CmpGreater,
				Type:       domain.TypeNumber,
				Left:       domain.VariableOperand(domain.VarBookingHours),
				Right:      domain.LiteralOperand("5", domain.TypeNumber),
			}},
			Formula: "rate * booking_hours ELSE rate",
		},
		CreatedBy: 7,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, Config{TTL: ttl}), mr
}

func TestRedisCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, time.Minute)

	_, ok, err := cache.Get(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	rule := testRule(5)
	require.NoError(t, cache.Set(ctx, rule))
	assert.True(t, mr.Exists(DefaultKeyPrefix+"5"))
	assert.Equal(t, time.Minute, mr.TTL(DefaultKeyPrefix+"5"))

	got, ok, err := cache.Get(ctx, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rule, got)

	require.NoError(t, cache.Invalidate(ctx, 5, 4))
	_, ok, err = cache.Get(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, time.Minute)

	require.NoError(t, cache.Set(ctx, testRule(5)))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_CorruptedEntry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, 0)

	require.NoError(t, mr.Set(DefaultKeyPrefix+"5", "{not json"))

	_, ok, err := cache.Get(ctx, 5)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCorruptedEntry)
}

func TestRedisCache_Unavailable(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, 0)
	mr.Close()

	_, _, err := cache.Get(ctx, 5)
	assert.ErrorIs(t, err, ErrCacheUnavailable)
}

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewInMemoryCache(Config{TTL: time.Minute})
	cache.now = func() time.Time { return now }

	rule := testRule(1)
	require.NoError(t, cache.Set(ctx, rule))

	got, ok, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rule, got)

	// копия не связана с содержимым кэша
	got.Active = false
	again, _, _ := cache.Get(ctx, 1)
	assert.True(t, again.Active)

	now = now.Add(2 * time.Minute)
	_, ok, _ = cache.Get(ctx, 1)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, rule))
	require.NoError(t, cache.Invalidate(ctx, 1, 4))
	_, ok, _ = cache.Get(ctx, 1)
	assert.False(t, ok)
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetCurrentByAreaID(ctx context.Context, areaID int64) (*domain.PricingRule, error) {
	args := m.Called(ctx, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingRule), args.Error(1)
}

func (m *mockRepository) Save(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	args := m.Called(ctx, rule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingRule), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func TestCachedRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	rule := testRule(3)
	repo.On("GetCurrentByAreaID", ctx, int64(3)).Return(rule, nil).Once()

	cached := NewCachedRepository(repo, NewInMemoryCache(Config{}), nopLogger{})

	first, err := cached.GetCurrentByAreaID(ctx, 3)
	require.NoError(t, err)
	second, err := cached.GetCurrentByAreaID(ctx, 3)
	require.NoError(t, err)

	assert.Equal(t, rule, first)
	assert.Equal(t, rule, second)
	repo.AssertExpectations(t)
}

func TestCachedRepository_MissIsNotCached(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	notFound := errors.New("not found")
	repo.On("GetCurrentByAreaID", ctx, int64(3)).Return(nil, notFound).Twice()

	cached := NewCachedRepository(repo, NewInMemoryCache(Config{}), nopLogger{})

	_, err := cached.GetCurrentByAreaID(ctx, 3)
	assert.ErrorIs(t, err, notFound)
	_, err = cached.GetCurrentByAreaID(ctx, 3)
	assert.ErrorIs(t, err, notFound)
	repo.AssertExpectations(t)
}

func TestCachedRepository_FallsBackWhenCacheDown(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, time.Minute)
	mr.Close()

	repo := new(mockRepository)
	rule := testRule(3)
	repo.On("GetCurrentByAreaID", ctx, int64(3)).Return(rule, nil).Once()

	got, err := NewCachedRepository(repo, cache, nopLogger{}).GetCurrentByAreaID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, rule, got)
}

func TestCachedRepository_InvalidateAfterSave(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	old := testRule(3)
	updated := testRule(3)
	updated.Version = 4

	repo.On("GetCurrentByAreaID", ctx, int64(3)).Return(old, nil).Once()
	repo.On("Save", ctx, updated).Return(updated, nil).Once()
	repo.On("GetCurrentByAreaID", ctx, int64(3)).Return(updated, nil).Once()

	cached := NewCachedRepository(repo, NewInMemoryCache(Config{}), nopLogger{})

	_, err := cached.GetCurrentByAreaID(ctx, 3)
	require.NoError(t, err)
	_, err = cached.Save(ctx, updated)
	require.NoError(t, err)
	require.NoError(t, cached.Invalidate(ctx, 3, 4))

	got, err := cached.GetCurrentByAreaID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Version)
	repo.AssertExpectations(t)
}

// Чтение стартовало до сохранения v4 и пишет v3 в кэш уже после инвалидации
func TestCachedRepository_StaleReadAfterInvalidate(t *testing.T) {
	redisCache, _ := newRedisCache(t, time.Minute)
	caches := map[string]Cache{
		"in-memory": NewInMemoryCache(Config{TTL: time.Minute}),
		"redis":     redisCache,
	}

	for name, cache := range caches {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			stale := testRule(3)
			fresh := testRule(3)
			fresh.Version = 4

			started := make(chan struct{})
			release := make(chan struct{})
			repo := new(mockRepository)
			repo.On("GetCurrentByAreaID", ctx, int64(3)).Return(stale, nil).Once().
				Run(func(mock.Arguments) {
					close(started)
					<-release
				})
			repo.On("GetCurrentByAreaID", ctx, int64(3)).Return(fresh, nil).Once()

			cached := NewCachedRepository(repo, cache, nopLogger{})

			done := make(chan struct{})
			go func() {
				defer close(done)
				_, _ = cached.GetCurrentByAreaID(ctx, 3)
			}()

			// Запрос ушел в репозиторий, затем сохраняется v4 и кэш инвалидируется
			<-started
			require.NoError(t, cached.Invalidate(ctx, 3, 4))
			close(release)
			<-done

			_, ok, err := cache.Get(ctx, 3)
			require.NoError(t, err)
			assert.False(t, ok, "stale v3 must not be cached over the v4 invalidation")

			got, err := cached.GetCurrentByAreaID(ctx, 3)
			require.NoError(t, err)
			assert.Equal(t, 4, got.Version)

			cachedRule, ok, err := cache.Get(ctx, 3)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 4, cachedRule.Version)
			repo.AssertExpectations(t)
		})
	}
}

func TestInMemoryCache_SetKeepsNewerVersion(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCache(Config{})

	newer := testRule(1)
	newer.Version = 5
	require.NoError(t, cache.Set(ctx, newer))
	require.NoError(t, cache.Set(ctx, testRule(1)))

	got, ok, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, got.Version)
}
