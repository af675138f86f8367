package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheKey is one cache-key tuple understood by the dashboard's query layer,
// e.g. {"submissions"} or {"clients", "<client_id>"}.
type CacheKey []string

// Invalidator signals the dashboard to refetch the views behind the given
// keys. Fire-and-forget: no return value is consulted.
type Invalidator interface {
	Invalidate(keys []CacheKey)
}

// InvalidationChannel is the redis pub/sub channel the dashboard's query
// layer subscribes to.
const InvalidationChannel = "cache.invalidate"

// RedisInvalidator publishes invalidation keys as a JSON array on a redis
// pub/sub channel.
type RedisInvalidator struct {
	client *redis.Client
}

func NewRedisInvalidator(client *redis.Client) *RedisInvalidator {
	return &RedisInvalidator{client: client}
}

func (r *RedisInvalidator) Invalidate(keys []CacheKey) {
	if r.client == nil || len(keys) == 0 {
		return
	}

	payload, err := json.Marshal(keys)
	if err != nil {
		log.Printf("cache invalidation: failed to encode keys: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.client.Publish(ctx, InvalidationChannel, payload).Err(); err != nil {
		log.Printf("cache invalidation: publish failed: %v", err)
	}
}

// LogInvalidator is the fallback when redis is not configured.
type LogInvalidator struct{}

func (LogInvalidator) Invalidate(keys []CacheKey) {
	log.Printf("cache invalidation (no redis configured): %v", keys)
}
