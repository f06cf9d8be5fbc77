package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisCache wraps the redis client with the few operations the app
// needs: the JWT logout blacklist and the temperature cache used by
// affinity matching.
type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisCache{Client: redis.NewClient(opts)}, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// --- token blacklist ---

func keyForBlacklist(token string) string {
	return "blacklist:" + token
}

// BlacklistToken voids a JWT until its natural expiry.
func (c *RedisCache) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.Client.Set(ctx, keyForBlacklist(token), 1, ttl).Err()
}

func (c *RedisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := c.Client.Exists(ctx, keyForBlacklist(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// --- temperature cache ---

func keyForTemperature(userID uuid.UUID) string {
	return "user:temperature:" + userID.String()
}

func (c *RedisCache) SetTemperature(ctx context.Context, userID uuid.UUID, temperature float64) error {
	return c.Client.Set(ctx, keyForTemperature(userID), strconv.FormatFloat(temperature, 'f', -1, 64), time.Hour).Err()
}

// GetTemperature returns (value, found). A cache miss is not an error.
func (c *RedisCache) GetTemperature(ctx context.Context, userID uuid.UUID) (float64, bool, error) {
	val, err := c.Client.Get(ctx, keyForTemperature(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	t, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, nil
	}
	// refresh TTL on access
	_ = c.Client.Expire(ctx, keyForTemperature(userID), time.Hour).Err()
	return t, true, nil
}
