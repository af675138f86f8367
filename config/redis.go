package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis is the shared client used for cache-invalidation pub/sub. Nil when
// REDIS_ADDR is not configured; callers must handle that.
var Redis *redis.Client

// InitRedis connects to redis when REDIS_ADDR is set. The API runs fine
// without it, invalidation signals are then only logged.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, cache invalidation will be log-only")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis ping failed, cache invalidation will be log-only: %v", err)
		return
	}

	Redis = client
	log.Println("Redis connected successfully")
}
