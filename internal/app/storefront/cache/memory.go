package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"growshop/pkg/logger"
	"growshop/pkg/metrics"
)

type memoryEntry struct {
	data   []byte
	expiry time.Time
}

// MemoryCache - процессный TTL кеш в памяти
// Содержимое теряется при рестарте процесса: все данные восстановимы
// из upstream, поэтому персистентность не нужна
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	service string

	// now подменяется в тестах для детерминированной проверки TTL
	now func() time.Time
}

func NewMemoryCache(service string) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		service: service,
		now:     time.Now,
	}
}

// Get возвращает значение по ключу, десериализуя его в dest
// Истёкшая запись попутно удаляется
func (c *MemoryCache) Get(ctx context.Context, key string, dest any) bool {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		metrics.RecordCacheMiss(c.service, KeyPrefix(key))
		return false
	}

	if c.now().After(entry.expiry) {
		c.mu.Lock()
		// Перепроверяем под write-lock: запись могли успеть перезаписать
		if current, still := c.entries[key]; still && c.now().After(current.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		metrics.RecordCacheMiss(c.service, KeyPrefix(key))
		return false
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache entry has unexpected shape, treating as miss")
		metrics.RecordCacheMiss(c.service, KeyPrefix(key))
		return false
	}

	metrics.RecordCacheHit(c.service, KeyPrefix(key))
	return true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("failed to marshal value for cache, skipping")
		return
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{
		data:   data,
		expiry: c.now().Add(ttl),
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.SetCacheEntries(c.service, size)
}

func (c *MemoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *MemoryCache) DeletePrefix(ctx context.Context, prefix string) {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

func (c *MemoryCache) Clear(ctx context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()

	metrics.SetCacheEntries(c.service, 0)
}

// Cleanup удаляет все истёкшие записи
// Запускается по расписанию из cmd/main.go
func (c *MemoryCache) Cleanup(ctx context.Context) int {
	now := c.now()
	evicted := 0

	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expiry) {
			delete(c.entries, key)
			evicted++
		}
	}
	size := len(c.entries)
	c.mu.Unlock()

	if evicted > 0 {
		metrics.RecordCacheEvictions(c.service, evicted)
	}
	metrics.SetCacheEntries(c.service, size)

	return evicted
}

func (c *MemoryCache) Len(ctx context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
