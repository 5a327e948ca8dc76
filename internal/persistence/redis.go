package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces every key this package writes.
const RedisKeyPrefix = "resume_editor:documents:"

// NewRedisClient connects to a redis:// URL or a bare host:port address.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// RedisStore keeps the record under one key per installation.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore creates a store for one installation id.
func NewRedisStore(rdb *redis.Client, userID string) *RedisStore {
	return &RedisStore{rdb: rdb, key: RedisKeyPrefix + userID}
}

// Key is the redis key the record is stored under.
func (s *RedisStore) Key() string {
	return s.key
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.key, err)
	}
	return data, nil
}

// Save implements Store. The record does not expire.
func (s *RedisStore) Save(ctx context.Context, data []byte) error {
	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.key, err)
	}
	return nil
}
