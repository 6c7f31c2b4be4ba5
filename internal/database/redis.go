package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sawant8123/storefront-service/internal/auth/service"
	"github.com/sawant8123/storefront-service/internal/configs"
	"github.com/sawant8123/storefront-service/internal/events"
)

var ErrCacheMiss = errors.New("cache miss")

type RedisCache struct {
	client *redis.Client
}

func InitRedis(ctx context.Context, cfg *configs.Config) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("failed to connect to Redis: %v", err)
		_ = rdb.Close()
		return nil, err
	}

	log.Println("⚡️ Successfully connected to Redis Cache!")
	return &RedisCache{client: rdb}, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	marshaledValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for Redis: %w", err)
	}
	return r.client.Set(ctx, key, marshaledValue, expiration).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("key '%s': %w", key, ErrCacheMiss)
	} else if err != nil {
		return fmt.Errorf("failed to get value from Redis: %w", err)
	}
	return json.Unmarshal([]byte(val), dest)
}

// IsRateLimited counts a hit for key in a fixed window and reports whether
// the limit is exceeded.
func (r *RedisCache) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := countHit(ctx, r.client, "ratelimit:"+key, window)
	if err != nil {
		return false, err
	}
	return count > int64(limit), nil
}

// rateCounter is the slice of the Redis API the limiter needs.
type rateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// countHit increments key and starts its window on the first hit. Plain
// EXPIRE keeps this working on Redis servers older than 7.
func countHit(ctx context.Context, rc rateCounter, key string, window time.Duration) (int64, error) {
	count, err := rc.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := rc.Expire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return count, nil
}

func (r *RedisCache) Publish(ctx context.Context, event events.OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	return r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: events.OrderStreamKey,
		MaxLen: 100000,
		Approx: true,
		Values: map[string]interface{}{"event": eventData},
	}).Err()
}

func (r *RedisCache) RawClient() *redis.Client {
	return r.client
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

var (
	_ service.CacheService = (*RedisCache)(nil)
	_ events.Publisher     = (*RedisCache)(nil)
)
