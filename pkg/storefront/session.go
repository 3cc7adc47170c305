// Package storefront is the entry point for embedding the record store. Open
// wires the configured document store, the tenant directory, and the record
// store into a Session.
//
// Example:
//
//	s, err := storefront.Open(ctx, types.Config{Backend: types.BackendFile, DataDir: ".storefront-db"})
//	if err != nil { ... }
//	defer s.Close()
//	recs, _ := s.Records()
//	rec, err := recs.Add(ctx, types.Clientes, types.Record{"nombre": "Empresa ABC S.A."})
package storefront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/storefront/internal/docstore"
	"github.com/mesh-intelligence/storefront/internal/records"
	"github.com/mesh-intelligence/storefront/internal/tenants"
	"github.com/mesh-intelligence/storefront/pkg/types"
)

// Option configures Open.
type Option func(*options)

type options struct {
	logger *zap.Logger
	docs   types.DocumentStore
	now    func() time.Time
}

// WithLogger sets the logger passed to every component.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDocumentStore uses docs instead of opening cfg.Backend. The session
// closes it on Close.
func WithDocumentStore(docs types.DocumentStore) Option {
	return func(o *options) { o.docs = docs }
}

// WithClock sets the time source for record dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Session is an open record store. Tenants and Records return
// ErrSessionClosed once Close has been called, and so does every call on a
// handle they returned earlier that would touch storage.
type Session struct {
	mu     sync.RWMutex
	closed bool

	docs    types.DocumentStore
	dir     *tenants.Directory
	records *records.Store
	logger  *zap.Logger
}

// Open validates cfg and loads the session state. When cfg.Tenants is empty
// the default tenants are used. The demo dataset seeds a fresh store unless
// cfg.Seed is SeedEmpty.
func Open(ctx context.Context, cfg types.Config, opts ...Option) (*Session, error) {
	o := options{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	docs := o.docs
	if docs == nil {
		var err error
		docs, err = docstore.Open(ctx, cfg, docstore.WithLogger(o.logger))
		if err != nil {
			return nil, fmt.Errorf("opening %s store: %w", cfg.Backend, err)
		}
	}

	list := cfg.Tenants
	if len(list) == 0 {
		list = types.DefaultTenants
	}
	dir, err := tenants.New(ctx, docs, list, tenants.WithLogger(o.logger))
	if err != nil {
		docs.Close()
		return nil, err
	}

	seed := types.RootDocument{}
	if cfg.Seed != types.SeedEmpty {
		seed = records.DemoDataset()
	}
	store := records.New(ctx, docs, dir,
		records.WithLogger(o.logger),
		records.WithClock(o.now),
		records.WithSeed(seed),
	)

	o.logger.Debug("session opened", zap.String("backend", cfg.Backend),
		zap.String("tenant", dir.Active().ID))
	return &Session{docs: docs, dir: dir, records: store, logger: o.logger}, nil
}

// Tenants returns the tenant directory.
func (s *Session) Tenants() (types.Directory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, types.ErrSessionClosed
	}
	return &sessionDirectory{s: s}, nil
}

// Records returns the record store for the active tenant.
func (s *Session) Records() (types.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, types.ErrSessionClosed
	}
	return &sessionStore{s: s}, nil
}

// TenantIDs returns the ids of tenants that have a stored dataset.
func (s *Session) TenantIDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, types.ErrSessionClosed
	}
	return s.records.TenantIDs(), nil
}

// DropTenant deletes the stored dataset of tenant id.
func (s *Session) DropTenant(ctx context.Context, id string) error {
	return s.do(func() error {
		return s.records.DropTenant(ctx, id)
	})
}

// do runs fn while holding the session open. Close waits for it to return.
func (s *Session) do(fn func() error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.ErrSessionClosed
	}
	return fn()
}

// Close releases the document store. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.logger.Debug("session closed")
	return s.docs.Close()
}
