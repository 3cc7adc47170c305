// Package records implements the multi-tenant record store. The store owns
// the RootDocument, resolves the active tenant through the directory on every
// call, and writes the whole document through the DocumentStore before a
// mutation becomes visible.
package records

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/storefront/pkg/types"
)

// DateLayout is the format of the fecha field stamped on new records.
const DateLayout = "2006-01-02"

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for load fallbacks, mutations, and write failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source for fecha stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSeed sets the document used when nothing was saved yet or the saved
// document cannot be read. The default is an empty document.
func WithSeed(seed types.RootDocument) Option {
	return func(s *Store) {
		s.seed = seed
	}
}

// Store holds every tenant's dataset. It implements types.Store.
type Store struct {
	mu  sync.RWMutex
	doc types.RootDocument

	dir    types.Directory
	docs   types.DocumentStore
	seed   types.RootDocument
	now    func() time.Time
	logger *zap.Logger
}

var _ types.Store = (*Store)(nil)

// New loads the saved RootDocument from docs. A missing document starts from
// the seed; an unreadable or corrupt one is logged and also replaced by the
// seed. The fallback is written on the first mutation, not here.
func New(ctx context.Context, docs types.DocumentStore, dir types.Directory, opts ...Option) *Store {
	s := &Store{
		dir:    dir,
		docs:   docs,
		seed:   types.RootDocument{},
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.doc = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) types.RootDocument {
	data, ok, err := s.docs.Load(ctx, types.KeyRootDocument)
	if err != nil {
		s.logger.Warn("document unreadable, using seed dataset", zap.Error(err))
		return s.seed.Clone()
	}
	if !ok {
		s.logger.Debug("no saved document, using seed dataset")
		return s.seed.Clone()
	}
	doc, err := types.DecodeRootDocument(data)
	if err != nil {
		s.logger.Warn("document corrupt, using seed dataset",
			zap.Error(fmt.Errorf("%w: %v", types.ErrPersistenceLoad, err)))
		return s.seed.Clone()
	}
	return doc
}

// List returns copies of the active tenant's records of type t, in
// insertion order. A tenant with no dataset yet has empty collections.
func (s *Store) List(t types.EntityType) ([]types.Record, error) {
	if err := checkType(t); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds := s.doc[s.dir.Active().ID]
	if ds == nil {
		return []types.Record{}, nil
	}
	return types.CloneRecords(ds.Collections[t]), nil
}

// Get returns a copy of the record of type t with the given id.
// Returns ErrRecordNotFound if it does not exist.
func (s *Store) Get(t types.EntityType, id string) (types.Record, error) {
	if err := checkType(t); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ds := s.doc[s.dir.Active().ID]; ds != nil {
		if i := indexOf(ds.Collections[t], id); i >= 0 {
			return ds.Collections[t][i].Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s %q", types.ErrRecordNotFound, t, id)
}

// Add assigns the next id for t, stamps today's date as fecha, appends the
// record, and persists. Caller-supplied id and fecha fields are overwritten.
// Values are stored and returned in their JSON form: numbers as json.Number,
// typed slices and maps as []any and map[string]any.
func (s *Store) Add(ctx context.Context, t types.EntityType, fields types.Record) (types.Record, error) {
	if err := checkType(t); err != nil {
		return nil, err
	}

	var stored types.Record
	err := s.mutate(ctx, "add", func(tenantID string, ds *types.Dataset) error {
		rec, err := normalize(fields)
		if err != nil {
			return err
		}
		rec[types.FieldID] = NextID(t, ds.Collections[t])
		rec[types.FieldFecha] = s.now().Format(DateLayout)
		ds.Collections[t] = append(ds.Collections[t], rec)
		stored = rec.Clone()
		s.logger.Debug("record added", zap.String("tenant", tenantID),
			zap.String("type", string(t)), zap.String("id", rec.ID()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Update replaces the record whose id matches record's id, then persists.
// Returns ErrRecordNotFound when no such record exists; it never inserts.
func (s *Store) Update(ctx context.Context, t types.EntityType, record types.Record) error {
	if err := checkType(t); err != nil {
		return err
	}
	id := record.ID()
	if id == "" {
		return fmt.Errorf("%w: record has no id", types.ErrInvalidID)
	}

	return s.mutate(ctx, "update", func(tenantID string, ds *types.Dataset) error {
		i := indexOf(ds.Collections[t], id)
		if i < 0 {
			return fmt.Errorf("%w: %s %q", types.ErrRecordNotFound, t, id)
		}
		rec, err := normalize(record)
		if err != nil {
			return err
		}
		ds.Collections[t][i] = rec
		s.logger.Debug("record updated", zap.String("tenant", tenantID),
			zap.String("type", string(t)), zap.String("id", id))
		return nil
	})
}

// Delete removes the record of type t with the given id and persists.
// An unknown id is not an error.
func (s *Store) Delete(ctx context.Context, t types.EntityType, id string) error {
	if err := checkType(t); err != nil {
		return err
	}

	return s.mutate(ctx, "delete", func(tenantID string, ds *types.Dataset) error {
		before := len(ds.Collections[t])
		ds.Collections[t] = slices.DeleteFunc(ds.Collections[t], func(r types.Record) bool {
			return r.ID() == id
		})
		if len(ds.Collections[t]) < before {
			s.logger.Debug("record deleted", zap.String("tenant", tenantID),
				zap.String("type", string(t)), zap.String("id", id))
		}
		return nil
	})
}

// AddToCart increments the quantity of productID, starting at 1.
func (s *Store) AddToCart(ctx context.Context, productID string) error {
	if productID == "" {
		return fmt.Errorf("%w: empty product id", types.ErrInvalidID)
	}
	return s.mutate(ctx, "cart add", func(_ string, ds *types.Dataset) error {
		ds.Cart[productID]++
		return nil
	})
}

// RemoveFromCart decrements the quantity of productID. An entry at 1 or
// absent is removed; zero is never stored.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	if productID == "" {
		return fmt.Errorf("%w: empty product id", types.ErrInvalidID)
	}
	return s.mutate(ctx, "cart remove", func(_ string, ds *types.Dataset) error {
		if ds.Cart[productID] > 1 {
			ds.Cart[productID]--
		} else {
			delete(ds.Cart, productID)
		}
		return nil
	})
}

// ClearCart empties the active tenant's cart.
func (s *Store) ClearCart(ctx context.Context) error {
	return s.mutate(ctx, "cart clear", func(_ string, ds *types.Dataset) error {
		ds.Cart = types.Cart{}
		return nil
	})
}

// Cart returns a copy of the active tenant's cart.
func (s *Store) Cart() (types.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds := s.doc[s.dir.Active().ID]
	if ds == nil {
		return types.Cart{}, nil
	}
	return ds.Cart.Clone(), nil
}

// CartCount returns the sum of the active tenant's cart quantities.
func (s *Store) CartCount() (int, error) {
	cart, err := s.Cart()
	if err != nil {
		return 0, err
	}
	return cart.Count(), nil
}

// TenantIDs returns the ids of every tenant that has a dataset, sorted.
func (s *Store) TenantIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.doc))
	for id := range s.doc {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DropTenant removes the dataset of tenant id and persists. Dropping a
// tenant without a dataset is not an error. The directory is untouched: if
// the tenant is still listed its next mutation starts from empty collections.
func (s *Store) DropTenant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc[id]; !ok {
		return nil
	}
	next := make(types.RootDocument, len(s.doc))
	for tid, ds := range s.doc {
		if tid != id {
			next[tid] = ds
		}
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.doc = next
	s.logger.Info("tenant dataset dropped", zap.String("tenant", id))
	return nil
}

// mutate runs fn against a copy of the active tenant's dataset under the
// write lock, saves the resulting document, and only then installs it. If fn
// or the save fails the in-memory state is unchanged. Other tenants'
// datasets are shared, not copied, and fn never sees them.
func (s *Store) mutate(ctx context.Context, op string, fn func(tenantID string, ds *types.Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenantID := s.dir.Active().ID
	ds := s.doc[tenantID].Clone()
	if err := fn(tenantID, ds); err != nil {
		return err
	}

	next := make(types.RootDocument, len(s.doc)+1)
	for id, other := range s.doc {
		next[id] = other
	}
	next[tenantID] = ds

	if err := s.persist(ctx, next); err != nil {
		s.logger.Error("mutation rolled back", zap.String("op", op),
			zap.String("tenant", tenantID), zap.Error(err))
		return err
	}
	s.doc = next
	return nil
}

func (s *Store) persist(ctx context.Context, doc types.RootDocument) error {
	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("%w: encoding document: %v", types.ErrPersistenceWrite, err)
	}
	if err := s.docs.Save(ctx, types.KeyRootDocument, data); err != nil {
		if !errors.Is(err, types.ErrPersistenceWrite) {
			err = fmt.Errorf("%w: %v", types.ErrPersistenceWrite, err)
		}
		return err
	}
	return nil
}

// normalize converts caller values to their stored JSON form so memory and
// the persisted document hold the same values.
func normalize(r types.Record) (types.Record, error) {
	out, err := r.Normalize()
	if err != nil {
		return nil, fmt.Errorf("%w: encoding record: %v", types.ErrPersistenceWrite, err)
	}
	return out, nil
}

func checkType(t types.EntityType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownEntityType, t)
	}
	return nil
}

func indexOf(records []types.Record, id string) int {
	return slices.IndexFunc(records, func(r types.Record) bool {
		return r.ID() == id
	})
}
