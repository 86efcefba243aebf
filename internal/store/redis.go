package store

import (
	"context"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/voidshard/roadgraph/internal/logger"
)

const defaultPrefix = "roadgraph:snapshot:"

// RedisStore keeps snapshots as plain redis string values
type RedisStore struct {
	rc     *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client
func NewRedisStore(rc *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisStore{rc: rc, prefix: prefix}
}

// OpenRedisFromEnv connects using REDIS_HOST, REDIS_PORT, REDIS_PASS and REDIS_DB.
// A bad REDIS_DB falls back to 0.
func OpenRedisFromEnv() *RedisStore {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			db = n
		}
	}
	addr := host + ":" + port
	logger.L().Debug("redis_env", "addr", addr, "db", db)

	rc := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASS"), DB: db})
	return NewRedisStore(rc, os.Getenv("REDIS_PREFIX"))
}

// Save sets the snapshot with no expiry
func (r *RedisStore) Save(ctx context.Context, name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := r.rc.Set(ctx, r.prefix+name, data, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", name)
	}
	logger.L().Debug("store_save", "backend", "redis", "name", name, "bytes", len(data))
	return nil
}

// Load fetches a snapshot, ErrNotFound if the key is missing
func (r *RedisStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := r.rc.Get(ctx, r.prefix+name).Bytes()
	if err == redis.Nil {
		return nil, errors.Wrap(ErrNotFound, name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "redis get %s", name)
	}
	return data, nil
}

// Delete removes the key
func (r *RedisStore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := r.rc.Del(ctx, r.prefix+name).Err(); err != nil {
		return errors.Wrapf(err, "redis del %s", name)
	}
	return nil
}

// Close the underlying client
func (r *RedisStore) Close() error {
	return r.rc.Close()
}
