package storage

import (
	"context"
	"maps"
	"sync"

	"go.uber.org/zap"
)

// MemoryStorage implements NameStore in process memory. Names are lost on exit.
type MemoryStorage struct {
	mu        sync.RWMutex
	resources map[string]string
	shops     map[string]string
	logger    *zap.Logger
}

// NewMemoryStorage creates a new in-memory name store.
func NewMemoryStorage(logger *zap.Logger) *MemoryStorage {
	logger.Info("memory-storage-initialized")
	return &MemoryStorage{
		resources: make(map[string]string),
		shops:     make(map[string]string),
		logger:    logger,
	}
}

// ResourceNames returns a copy of all resource names.
func (m *MemoryStorage) ResourceNames(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.resources), nil
}

// ShopNames returns a copy of all shop names.
func (m *MemoryStorage) ShopNames(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.shops), nil
}

// SaveResourceName stores the name of a resource.
func (m *MemoryStorage) SaveResourceName(ctx context.Context, guid, name string) error {
	if err := validate(guid, name); err != nil {
		return err
	}

	m.mu.Lock()
	m.resources[guid] = name
	m.mu.Unlock()

	m.logger.Debug("resource-name-saved", zap.String("guid", guid), zap.String("name", name))
	return nil
}

// SaveShopName stores the name of a shop.
func (m *MemoryStorage) SaveShopName(ctx context.Context, shopID, name string) error {
	if err := validate(shopID, name); err != nil {
		return err
	}

	m.mu.Lock()
	m.shops[shopID] = name
	m.mu.Unlock()

	m.logger.Debug("shop-name-saved", zap.String("shop-id", shopID), zap.String("name", name))
	return nil
}

// Close is a no-op for memory storage.
func (m *MemoryStorage) Close() error {
	m.logger.Info("closing-memory-storage")
	return nil
}
