// Package docstore implements the durable key/value boundary of the record
// store. Every backend saves atomically per call: a reader sees either the
// previous bytes or the new ones, never a partial write.
package docstore

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/storefront/pkg/types"
)

// Option configures a document store.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open creates the document store selected by cfg.Backend.
func Open(ctx context.Context, cfg types.Config, opts ...Option) (types.DocumentStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case types.BackendFile:
		s, err := NewFileStore(dataDir(cfg), opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case types.BackendSQLite:
		s, err := OpenSQLite(ctx, dataDir(cfg), opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case types.BackendRedis:
		s, err := OpenRedis(ctx, cfg.Redis, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case types.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, cfg.Backend)
	}
}

func dataDir(cfg types.Config) string {
	if cfg.DataDir == "" {
		return "."
	}
	return cfg.DataDir
}

// validateKey rejects keys that are empty or could escape the data directory.
func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: document key %q", types.ErrInvalidID, key)
	}
	return nil
}

func writeFailure(key string, err error) error {
	return fmt.Errorf("%w: saving %s: %v", types.ErrPersistenceWrite, key, err)
}

func loadFailure(key string, err error) error {
	return fmt.Errorf("%w: loading %s: %v", types.ErrPersistenceLoad, key, err)
}
