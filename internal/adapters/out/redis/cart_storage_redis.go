// internal/adapters/out/redis/cart_storage_redis.go
package redisout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CartStorageRedis implements cart.Storage on Redis. A zero TTL stores
// keys without expiry.
type CartStorageRedis struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCartStorageRedis(client *redis.Client, ttl time.Duration) *CartStorageRedis {
	return &CartStorageRedis{Client: client, TTL: ttl}
}

// Get returns (nil, nil) if the key is absent (nil policy).
func (s *CartStorageRedis) Get(ctx context.Context, key string) ([]byte, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("cart_storage_redis: client is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return nil, errors.New("cart_storage_redis: key is empty")
	}

	b, err := s.Client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CartStorageRedis) Set(ctx context.Context, key string, value []byte) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_storage_redis: client is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("cart_storage_redis: key is empty")
	}
	return s.Client.Set(ctx, k, value, s.TTL).Err()
}

// Delete is idempotent; DEL on a missing key succeeds.
func (s *CartStorageRedis) Delete(ctx context.Context, key string) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_storage_redis: client is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("cart_storage_redis: key is empty")
	}
	return s.Client.Del(ctx, k).Err()
}
