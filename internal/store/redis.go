package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis wraps the redis client used for snapshots and the notification queue.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to redis with short timeouts.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{Client: client}
}

// Healthy verifies redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}

// RedisSnapshots stores snapshots as plain redis strings under prefix:key.
type RedisSnapshots struct {
	client *redis.Client
	prefix string
}

// NewRedisSnapshots creates a redis-backed snapshot store.
func NewRedisSnapshots(client *redis.Client, prefix string) *RedisSnapshots {
	if prefix == "" {
		prefix = "eventpass"
	}
	return &RedisSnapshots{client: client, prefix: prefix}
}

// Load fetches the snapshot string for key.
func (s *RedisSnapshots) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+":"+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Save overwrites the snapshot string. Snapshots never expire.
func (s *RedisSnapshots) Save(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, s.prefix+":"+key, data, 0).Err()
}
