package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// KnownSetTTL bounds how stale a cached knowledge set may get; review
// submissions invalidate it explicitly as well.
const KnownSetTTL = 5 * time.Minute

// RedisCache is the request-shared caching collaborator. Every caller
// treats it as optional: a nil cache or a redis failure falls back to the
// database read.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Printf("Connected to Redis at %s", redisURL)
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, key).Bytes()
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// KnownSetKey is the cache key for one learner's knowledge set.
// Format: "knownset:<userID>:<language>".
func KnownSetKey(userID int64, language string) string {
	return fmt.Sprintf("knownset:%d:%s", userID, language)
}
