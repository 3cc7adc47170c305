package storefront

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storefront/internal/docstore"
	"github.com/mesh-intelligence/storefront/internal/testutil"
	"github.com/mesh-intelligence/storefront/pkg/types"
)

func fileConfig(t *testing.T) types.Config {
	t.Helper()
	return types.Config{Backend: types.BackendFile, DataDir: t.TempDir()}
}

func openSession(t *testing.T, cfg types.Config, opts ...Option) *Session {
	t.Helper()
	s, err := Open(context.Background(), cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.Config
		wantErr error
	}{
		{"empty backend", types.Config{}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "postgres"}, types.ErrBackendUnknown},
		{"unknown seed", types.Config{Backend: types.BackendMemory, Seed: "full"}, types.ErrSeedUnknown},
		{"duplicate tenants", types.Config{
			Backend: types.BackendMemory,
			Tenants: []types.Tenant{{ID: "a"}, {ID: "a"}},
		}, types.ErrDuplicateTenant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOpenDefaultsAndDemoSeed(t *testing.T) {
	s := openSession(t, types.Config{Backend: types.BackendMemory})

	dir, err := s.Tenants()
	require.NoError(t, err)
	assert.Equal(t, types.DefaultTenants, dir.List())
	assert.Equal(t, "comp-1", dir.Active().ID)

	recs, err := s.Records()
	require.NoError(t, err)
	list, err := recs.List(types.Productos)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "PROD-001", list[0].ID())
}

func TestOpenEmptySeed(t *testing.T) {
	s := openSession(t, types.Config{Backend: types.BackendMemory, Seed: types.SeedEmpty})

	recs, err := s.Records()
	require.NoError(t, err)
	for _, et := range types.EntityTypes {
		list, err := recs.List(et)
		require.NoError(t, err)
		assert.Empty(t, list, et)
	}
	ids, err := s.TenantIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestConfiguredTenants(t *testing.T) {
	s := openSession(t, types.Config{
		Backend: types.BackendMemory,
		Seed:    types.SeedEmpty,
		Tenants: []types.Tenant{{ID: "norte", Name: "Norte"}, {Name: "Sur"}},
	})

	dir, err := s.Tenants()
	require.NoError(t, err)
	list := dir.List()
	require.Len(t, list, 2)
	assert.Equal(t, "norte", dir.Active().ID)
	assert.NotEmpty(t, list[1].ID)
	assert.Equal(t, "Sur", list[1].Name)
}

// The end-to-end scenario: two adds, delete the first, the second survives,
// and everything is still there after reopening the same directory.
func TestScenarioSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := fileConfig(t)
	cfg.Seed = types.SeedEmpty
	clock := WithClock(func() time.Time { return time.Date(2025, 9, 18, 0, 0, 0, 0, time.UTC) })

	s, err := Open(ctx, cfg, clock)
	require.NoError(t, err)
	recs, err := s.Records()
	require.NoError(t, err)

	first, err := recs.Add(ctx, types.Clientes, types.Record{"nombre": "A"})
	require.NoError(t, err)
	second, err := recs.Add(ctx, types.Clientes, types.Record{"nombre": "B"})
	require.NoError(t, err)
	assert.Equal(t, "CLI-001", first.ID())
	assert.Equal(t, "CLI-002", second.ID())
	require.NoError(t, recs.Delete(ctx, types.Clientes, "CLI-001"))
	require.NoError(t, recs.AddToCart(ctx, "PRO-001"))

	dir, err := s.Tenants()
	require.NoError(t, err)
	require.NoError(t, dir.SetActive(ctx, "comp-2"))
	require.NoError(t, s.Close())

	assert.FileExists(t, filepath.Join(cfg.DataDir, types.KeyRootDocument))

	s = openSession(t, cfg, clock)
	dir, err = s.Tenants()
	require.NoError(t, err)
	assert.Equal(t, "comp-2", dir.Active().ID)
	require.NoError(t, dir.SetActive(ctx, "comp-1"))

	recs, err = s.Records()
	require.NoError(t, err)
	list, err := recs.List(types.Clientes)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "CLI-002", list[0].ID())
	assert.Equal(t, "2025-09-18", list[0][types.FieldFecha])
	count, err := recs.CartCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLiteBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("sqlite round trip")
	}
	ctx := context.Background()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	s, err := Open(ctx, cfg)
	require.NoError(t, err)
	recs, err := s.Records()
	require.NoError(t, err)
	rec, err := recs.Add(ctx, types.Usuarios, types.Record{"nombre": "Vendedor 2"})
	require.NoError(t, err)
	assert.Equal(t, "USU-002", rec.ID())
	require.NoError(t, s.Close())

	s = openSession(t, cfg)
	recs, err = s.Records()
	require.NoError(t, err)
	got, err := recs.Get(types.Usuarios, "USU-002")
	require.NoError(t, err)
	assert.Equal(t, "Vendedor 2", got["nombre"])
}

func TestCorruptDocumentFallsBackToSeed(t *testing.T) {
	cfg := fileConfig(t)
	path := filepath.Join(cfg.DataDir, types.KeyRootDocument)
	require.NoError(t, os.WriteFile(path, []byte("{\"comp-1\": ["), 0o644))

	s := openSession(t, cfg)
	recs, err := s.Records()
	require.NoError(t, err)
	list, err := recs.List(types.Clientes)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "CLI-001", list[0].ID())
}

func TestWithDocumentStore(t *testing.T) {
	ctx := context.Background()
	docs := testutil.NewFlakyStore()
	s := openSession(t, types.Config{Backend: types.BackendMemory}, WithDocumentStore(docs))

	recs, err := s.Records()
	require.NoError(t, err)
	require.NoError(t, recs.AddToCart(ctx, "PRO-001"))
	assert.Equal(t, 1, docs.Saves(types.KeyRootDocument))

	docs.FailSaves(types.KeyRootDocument, true)
	assert.ErrorIs(t, recs.AddToCart(ctx, "PRO-001"), types.ErrPersistenceWrite)
	count, err := recs.CartCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDropTenant(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, types.Config{Backend: types.BackendMemory})

	ids, err := s.TenantIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"comp-1", "comp-2"}, ids)

	require.NoError(t, s.DropTenant(ctx, "comp-1"))
	ids, err = s.TenantIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"comp-2"}, ids)
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, types.Config{Backend: types.BackendMemory})
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "close is idempotent")

	_, err = s.Tenants()
	assert.ErrorIs(t, err, types.ErrSessionClosed)
	_, err = s.Records()
	assert.ErrorIs(t, err, types.ErrSessionClosed)
	_, err = s.TenantIDs()
	assert.ErrorIs(t, err, types.ErrSessionClosed)
	assert.ErrorIs(t, s.DropTenant(ctx, "comp-1"), types.ErrSessionClosed)
}

func TestOpenRejectsUnnamedTenant(t *testing.T) {
	docs := docstore.NewMemoryStore()
	_, err := Open(context.Background(), types.Config{
		Backend: types.BackendMemory,
		Tenants: []types.Tenant{{}},
	}, WithDocumentStore(docs))
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func TestHandlesFailAfterClose(t *testing.T) {
	ctx := context.Background()
	cfg := fileConfig(t)
	cfg.Seed = types.SeedEmpty

	s, err := Open(ctx, cfg)
	require.NoError(t, err)
	recs, err := s.Records()
	require.NoError(t, err)
	dir, err := s.Tenants()
	require.NoError(t, err)
	_, err = recs.Add(ctx, types.Clientes, types.Record{"nombre": "A"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = recs.Add(ctx, types.Clientes, types.Record{"nombre": "B"})
	assert.ErrorIs(t, err, types.ErrSessionClosed)
	_, err = recs.List(types.Clientes)
	assert.ErrorIs(t, err, types.ErrSessionClosed)
	_, err = recs.Get(types.Clientes, "CLI-001")
	assert.ErrorIs(t, err, types.ErrSessionClosed)
	assert.ErrorIs(t, recs.Update(ctx, types.Clientes, types.Record{"id": "CLI-001"}), types.ErrSessionClosed)
	assert.ErrorIs(t, recs.Delete(ctx, types.Clientes, "CLI-001"), types.ErrSessionClosed)
	assert.ErrorIs(t, recs.AddToCart(ctx, "PRO-001"), types.ErrSessionClosed)
	assert.ErrorIs(t, recs.RemoveFromCart(ctx, "PRO-001"), types.ErrSessionClosed)
	assert.ErrorIs(t, recs.ClearCart(ctx), types.ErrSessionClosed)
	_, err = recs.Cart()
	assert.ErrorIs(t, err, types.ErrSessionClosed)
	_, err = recs.CartCount()
	assert.ErrorIs(t, err, types.ErrSessionClosed)
	assert.ErrorIs(t, dir.SetActive(ctx, "comp-2"), types.ErrSessionClosed)
	assert.Equal(t, "comp-1", dir.Active().ID)

	s = openSession(t, cfg)
	recs, err = s.Records()
	require.NoError(t, err)
	list, err := recs.List(types.Clientes)
	require.NoError(t, err)
	require.Len(t, list, 1, "nothing was written after close")
	assert.Equal(t, "A", list[0]["nombre"])
}
