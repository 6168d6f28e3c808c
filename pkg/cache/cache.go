package cache

import "time"

// Cache is a bounded key/value store with per-entry expiry.
//
// Writes may be applied asynchronously: a Get right after Set can miss
// until Wait returns.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns (value, true) if found, (nil, false) if not found.
	Get(key string) (any, bool)

	// Set stores a value in the cache with a TTL. A false return means the
	// write was dropped.
	Set(key string, value any, ttl time.Duration) bool

	// Delete removes a value from the cache.
	Delete(key string)

	// Wait blocks until pending writes are visible to Get.
	Wait()

	// Clear removes all values from the cache.
	Clear()

	// Close closes the cache and releases resources.
	Close()
}
