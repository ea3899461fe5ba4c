package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSlots stores each slot under "<prefix>slot:<name>" without expiry.
type RedisSlots struct {
	client *redis.Client
	prefix string
}

func NewRedisSlots(client *redis.Client, prefix string) *RedisSlots {
	return &RedisSlots{client: client, prefix: prefix}
}

func (r *RedisSlots) Load(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, r.buildKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %s from redis: %w", name, err)
	}
	return data, true, nil
}

func (r *RedisSlots) Save(ctx context.Context, name string, data []byte) error {
	if err := r.client.Set(ctx, r.buildKey(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot %s to redis: %w", name, err)
	}
	return nil
}

func (r *RedisSlots) buildKey(name string) string {
	return r.prefix + "slot:" + name
}
