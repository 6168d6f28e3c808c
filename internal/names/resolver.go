package names

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/mselser95/trade-hauls/internal/storage"
	"github.com/mselser95/trade-hauls/pkg/cache"
	"go.uber.org/zap"
)

const (
	resourcesKey = "names:resources"
	shopsKey     = "names:shops"

	defaultTTL = 10 * time.Minute
)

// Names is the full name table as served to the dashboard.
type Names struct {
	Resources map[string]string `json:"resourceNames"`
	Shops     map[string]string `json:"shopNames"`
}

// Config holds resolver configuration.
type Config struct {
	TTL    time.Duration
	Logger *zap.Logger
}

// Resolver wraps a NameStore with caching. Each table is cached as a whole
// and dropped on every write to it.
type Resolver struct {
	store  storage.NameStore
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger

	mu          sync.Mutex
	generations map[string]uint64 // bumped by every invalidation of a table
}

// NewResolver creates a resolver. A nil cache disables caching.
func NewResolver(store storage.NameStore, c cache.Cache, cfg Config) *Resolver {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		store:  store,
		cache:  c,
		ttl:    ttl,
		logger: logger,

		generations: make(map[string]uint64),
	}
}

// All returns both name tables.
func (r *Resolver) All(ctx context.Context) (Names, error) {
	resources, err := r.table(ctx, resourcesKey, r.store.ResourceNames)
	if err != nil {
		return Names{}, fmt.Errorf("load resource names: %w", err)
	}
	shops, err := r.table(ctx, shopsKey, r.store.ShopNames)
	if err != nil {
		return Names{}, fmt.Errorf("load shop names: %w", err)
	}
	return Names{Resources: maps.Clone(resources), Shops: maps.Clone(shops)}, nil
}

// Resource returns the display name of a resource, or its GUID when unnamed
// or when the store is unavailable.
func (r *Resolver) Resource(ctx context.Context, guid string) string {
	return r.lookup(ctx, resourcesKey, r.store.ResourceNames, guid)
}

// Shop returns the display name of a shop, or its ID when unnamed or when the
// store is unavailable.
func (r *Resolver) Shop(ctx context.Context, shopID string) string {
	return r.lookup(ctx, shopsKey, r.store.ShopNames, shopID)
}

// SaveResource stores a resource name and invalidates the cached table.
func (r *Resolver) SaveResource(ctx context.Context, guid, name string) error {
	if err := r.store.SaveResourceName(ctx, guid, name); err != nil {
		return fmt.Errorf("save resource name: %w", err)
	}
	r.invalidate(resourcesKey)
	return nil
}

// SaveShop stores a shop name and invalidates the cached table.
func (r *Resolver) SaveShop(ctx context.Context, shopID, name string) error {
	if err := r.store.SaveShopName(ctx, shopID, name); err != nil {
		return fmt.Errorf("save shop name: %w", err)
	}
	r.invalidate(shopsKey)
	return nil
}

func (r *Resolver) lookup(ctx context.Context, key string, load func(context.Context) (map[string]string, error), id string) string {
	table, err := r.table(ctx, key, load)
	if err != nil {
		r.logger.Warn("name-lookup-failed", zap.String("table", key), zap.Error(err))
		return id
	}
	if name, ok := table[id]; ok {
		return name
	}
	return id
}

// table returns the cached copy of a name table, loading it from the store
// on a miss.
func (r *Resolver) table(ctx context.Context, key string, load func(context.Context) (map[string]string, error)) (map[string]string, error) {
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			if table, ok := cached.(map[string]string); ok {
				return table, nil
			}
		}
	}

	gen := r.generation(key)

	StoreLoadsTotal.WithLabelValues(key).Inc()
	table, err := load(ctx)
	if err != nil {
		StoreErrorsTotal.WithLabelValues(key).Inc()
		return nil, err
	}

	if r.cache != nil {
		r.mu.Lock()
		// A write landed while loading; the table may predate it.
		if r.generations[key] == gen {
			r.cache.Set(key, table, r.ttl)
		}
		r.mu.Unlock()
	}
	return table, nil
}

func (r *Resolver) generation(key string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[key]
}

func (r *Resolver) invalidate(key string) {
	if r.cache == nil {
		return
	}

	r.mu.Lock()
	r.generations[key]++
	r.cache.Delete(key)
	r.mu.Unlock()

	r.logger.Debug("name-cache-invalidated", zap.String("table", key))
}
