// Package tenants implements the tenant directory: the ordered list of
// companies and which one is active. Only the active tenant id is persisted;
// the list itself comes from configuration.
package tenants

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/storefront/pkg/types"
)

// Namespace seeds the name-derived ids of tenants configured without an id.
var Namespace = uuid.MustParse("6f1c2b7e-3a55-4d0e-9c1f-5b2a8e7d4c10")

// Option configures a Directory.
type Option func(*Directory)

// WithLogger sets the logger for tenant switches and load fallbacks.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Directory) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Directory holds the tenants in registration order and the active tenant.
// It implements types.Directory.
type Directory struct {
	mu       sync.RWMutex
	tenants  []types.Tenant
	index    map[string]int
	activeID string

	store  types.DocumentStore
	logger *zap.Logger
}

var _ types.Directory = (*Directory)(nil)

// New builds a directory over tenants and restores the active tenant from
// store. A missing, unreadable, or unknown stored id falls back to the first
// tenant; that fallback is logged, never returned as an error.
func New(ctx context.Context, store types.DocumentStore, tenants []types.Tenant, opts ...Option) (*Directory, error) {
	resolved, err := Resolve(tenants)
	if err != nil {
		return nil, err
	}

	d := &Directory{
		tenants: resolved,
		index:   make(map[string]int, len(resolved)),
		store:   store,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	for i, t := range resolved {
		d.index[t.ID] = i
	}

	d.activeID = d.tenants[0].ID
	data, ok, err := store.Load(ctx, types.KeyActiveTenant)
	switch {
	case err != nil:
		d.logger.Warn("active tenant unreadable, using first tenant",
			zap.String("tenant", d.activeID), zap.Error(err))
	case !ok:
		d.logger.Debug("no active tenant saved, using first tenant", zap.String("tenant", d.activeID))
	default:
		stored := strings.TrimSpace(string(data))
		if _, known := d.index[stored]; known {
			d.activeID = stored
		} else {
			d.logger.Warn("saved active tenant unknown, using first tenant",
				zap.String("saved", stored), zap.String("tenant", d.activeID))
		}
	}
	return d, nil
}

// Resolve validates a configured tenant list. Tenants without an id get one
// derived from their name, so the id is stable across restarts.
// Returns ErrNoTenants for an empty list and ErrDuplicateTenant when two
// tenants share an id.
func Resolve(tenants []types.Tenant) ([]types.Tenant, error) {
	if len(tenants) == 0 {
		return nil, types.ErrNoTenants
	}

	out := make([]types.Tenant, 0, len(tenants))
	seen := make(map[string]bool, len(tenants))
	for _, t := range tenants {
		t.ID = strings.TrimSpace(t.ID)
		t.Name = strings.TrimSpace(t.Name)
		if t.ID == "" {
			if t.Name == "" {
				return nil, fmt.Errorf("%w: tenant needs an id or a name", types.ErrInvalidID)
			}
			t.ID = DeriveID(t.Name)
		}
		if t.Name == "" {
			t.Name = t.ID
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("%w: %q", types.ErrDuplicateTenant, t.ID)
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, nil
}

// DeriveID returns the stable id for a tenant known only by name.
func DeriveID(name string) string {
	return uuid.NewSHA1(Namespace, []byte(name)).String()
}

// List returns every tenant in registration order.
func (d *Directory) List() []types.Tenant {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]types.Tenant, len(d.tenants))
	copy(out, d.tenants)
	return out
}

// Get returns the tenant with the given id.
// Returns ErrTenantNotFound if no tenant has that id.
func (d *Directory) Get(id string) (types.Tenant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i, ok := d.index[id]
	if !ok {
		return types.Tenant{}, fmt.Errorf("%w: %q", types.ErrTenantNotFound, id)
	}
	return d.tenants[i], nil
}

// Active returns the active tenant.
func (d *Directory) Active() types.Tenant {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if i, ok := d.index[d.activeID]; ok {
		return d.tenants[i]
	}
	return d.tenants[0]
}

// SetActive makes id the active tenant and writes it under
// KeyActiveTenant. On ErrTenantNotFound or a failed write the previously
// active tenant stays active.
func (d *Directory) SetActive(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.index[id]; !ok {
		return fmt.Errorf("%w: %q", types.ErrTenantNotFound, id)
	}
	if err := d.store.Save(ctx, types.KeyActiveTenant, []byte(id)); err != nil {
		return fmt.Errorf("saving active tenant: %w", err)
	}

	prev := d.activeID
	d.activeID = id
	d.logger.Info("active tenant changed", zap.String("from", prev), zap.String("to", id))
	return nil
}
