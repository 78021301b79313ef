package persist

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlot keeps the cart under one Redis key. A zero TTL never expires.
type RedisSlot struct {
	Client *redis.Client
	Key    string
	TTL    time.Duration
}

func NewRedisSlot(client *redis.Client, key string, ttl time.Duration) *RedisSlot {
	return &RedisSlot{Client: client, Key: key, TTL: ttl}
}

func (s *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.Client.Get(ctx, s.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotEmpty
	}
	return data, err
}

func (s *RedisSlot) Write(ctx context.Context, data []byte) error {
	return s.Client.Set(ctx, s.Key, data, s.TTL).Err()
}
