package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"growshop/pkg/logger"
	"growshop/pkg/metrics"
)

// RedisCache - Redis бэкенд кеша для деплоя в несколько инстансов,
// когда процессный кеш давал бы каждому инстансу свой набор промахов.
// TTL и вытеснение истёкших ключей Redis обеспечивает сам
type RedisCache struct {
	client  *redis.Client
	service string
}

func NewRedisCache(service, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client, service: service}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil - обычный промах, остальное - fail-open
		if err != redis.Nil {
			logger.Warn().Err(err).Str("key", key).Msg("redis get failed, treating as miss")
		}
		metrics.RecordCacheMiss(c.service, KeyPrefix(key))
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache entry has unexpected shape, treating as miss")
		metrics.RecordCacheMiss(c.service, KeyPrefix(key))
		return false
	}

	metrics.RecordCacheHit(c.service, KeyPrefix(key))
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("failed to marshal value for cache, skipping")
		return
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("redis del failed")
	}
}

func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn().Err(err).Str("key", iter.Val()).Msg("redis del failed")
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn().Err(err).Str("prefix", prefix).Msg("redis scan failed")
	}
}

func (c *RedisCache) Clear(ctx context.Context) {
	if err := c.client.FlushDB(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis flushdb failed")
	}
}

// Cleanup ничего не делает: истёкшие ключи Redis вытесняет сам
func (c *RedisCache) Cleanup(ctx context.Context) int {
	return 0
}

func (c *RedisCache) Len(ctx context.Context) int {
	size, err := c.client.DBSize(ctx).Result()
	if err != nil {
		return 0
	}
	return int(size)
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
