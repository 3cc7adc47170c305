package docstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/storefront/pkg/types"
)

// DefaultRedisPrefix namespaces storefront keys in a shared redis database.
const DefaultRedisPrefix = "storefront:"

// RedisStore keeps each document as a single redis string. SET replaces the
// value atomically.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger

	closeOnce sync.Once
	closeErr  error
}

// OpenRedis connects to the server described by cfg and verifies it with PING.
func OpenRedis(ctx context.Context, cfg types.RedisConfig, opts ...Option) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, types.ErrRedisAddrEmpty
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisStore(client, cfg.Prefix, opts...), nil
}

// NewRedisStore wraps an existing client. An empty prefix uses
// DefaultRedisPrefix.
func NewRedisStore(client *redis.Client, prefix string, opts ...Option) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	o := buildOptions(opts)
	return &RedisStore{client: client, prefix: prefix, logger: o.logger}
}

func (s *RedisStore) redisKey(key string) string {
	return s.prefix + key
}

// Load returns the value stored under the prefixed key.
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, loadFailure(key, err)
	}
	return data, true, nil
}

// Save sets the prefixed key to data with no expiry.
func (s *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.redisKey(key), data, 0).Err(); err != nil {
		s.logger.Error("document save failed", zap.String("key", key), zap.Error(err))
		return writeFailure(key, err)
	}
	s.logger.Debug("document saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// Close closes the underlying client. Idempotent.
func (s *RedisStore) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.client.Close()
	})
	return s.closeErr
}
