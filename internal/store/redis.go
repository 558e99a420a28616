package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MihkelHunter/habitual/internal/habit"
)

const redisTimeout = 5 * time.Second

// RedisStore implements habit.Mirror with a single Redis string key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedis wraps client. The snapshot lives at prefix+"tasks".
func NewRedis(client *redis.Client, prefix string) *RedisStore {
	if client == nil {
		panic("store.NewRedis: client is nil")
	}
	return &RedisStore{client: client, key: prefix + habit.StorageKey}
}

// DialRedis parses a redis:// URL and returns a store after a ping.
func DialRedis(url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedis(client, prefix), nil
}

func (r *RedisStore) Load() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (r *RedisStore) Save(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return r.client.Set(ctx, r.key, data, 0).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
