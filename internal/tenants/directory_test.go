package tenants

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storefront/internal/testutil"
	"github.com/mesh-intelligence/storefront/pkg/types"
)

func newDirectory(t *testing.T, store types.DocumentStore) *Directory {
	t.Helper()
	d, err := New(context.Background(), store, types.DefaultTenants)
	require.NoError(t, err)
	return d
}

func TestListPreservesOrder(t *testing.T) {
	tenants := []types.Tenant{
		{ID: "z", Name: "Zeta"},
		{ID: "a", Name: "Alfa"},
		{ID: "m", Name: "Mu"},
	}
	d, err := New(context.Background(), testutil.NewFlakyStore(), tenants)
	require.NoError(t, err)

	assert.Equal(t, tenants, d.List())

	got := d.List()
	got[0].Name = "mutated"
	assert.Equal(t, "Zeta", d.List()[0].Name, "List returns a copy")
}

func TestActiveDefaultsToFirstTenant(t *testing.T) {
	d := newDirectory(t, testutil.NewFlakyStore())
	assert.Equal(t, "comp-1", d.Active().ID)
}

func TestActiveRestoredFromStore(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFlakyStore()
	require.NoError(t, store.Save(ctx, types.KeyActiveTenant, []byte("comp-2")))

	d := newDirectory(t, store)
	assert.Equal(t, "comp-2", d.Active().ID)
}

func TestActiveSelfHeals(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *testutil.FlakyStore)
	}{
		{
			name: "unknown stored id",
			setup: func(s *testutil.FlakyStore) {
				s.Save(context.Background(), types.KeyActiveTenant, []byte("comp-99"))
			},
		},
		{
			name: "empty stored id",
			setup: func(s *testutil.FlakyStore) {
				s.Save(context.Background(), types.KeyActiveTenant, []byte(""))
			},
		},
		{
			name: "unreadable stored id",
			setup: func(s *testutil.FlakyStore) {
				s.FailLoads(types.KeyActiveTenant, true)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewFlakyStore()
			tt.setup(store)

			d := newDirectory(t, store)
			assert.Equal(t, "comp-1", d.Active().ID)
		})
	}
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFlakyStore()
	d := newDirectory(t, store)

	require.NoError(t, d.SetActive(ctx, "comp-2"))
	assert.Equal(t, "comp-2", d.Active().ID)

	data, ok, err := store.Load(ctx, types.KeyActiveTenant)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "comp-2", string(data), "active id is stored as a bare string")
	assert.Equal(t, 1, store.Saves(types.KeyActiveTenant))

	reloaded := newDirectory(t, store)
	assert.Equal(t, "comp-2", reloaded.Active().ID)
}

func TestSetActiveUnknownTenant(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFlakyStore()
	d := newDirectory(t, store)
	require.NoError(t, d.SetActive(ctx, "comp-2"))

	err := d.SetActive(ctx, "comp-404")
	assert.ErrorIs(t, err, types.ErrTenantNotFound)
	assert.Equal(t, "comp-2", d.Active().ID, "previous active tenant is kept")
	assert.Equal(t, 1, store.Saves(types.KeyActiveTenant), "no write for an unknown tenant")
}

func TestSetActiveWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewFlakyStore()
	d := newDirectory(t, store)

	store.FailSaves(types.KeyActiveTenant, true)
	err := d.SetActive(ctx, "comp-2")
	assert.ErrorIs(t, err, types.ErrPersistenceWrite)
	assert.Equal(t, "comp-1", d.Active().ID)
}

func TestGet(t *testing.T) {
	d := newDirectory(t, testutil.NewFlakyStore())

	got, err := d.Get("comp-2")
	require.NoError(t, err)
	assert.Equal(t, "Sucursal Secundaria Ltda.", got.Name)

	_, err = d.Get("nope")
	assert.ErrorIs(t, err, types.ErrTenantNotFound)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		input   []types.Tenant
		wantErr error
		check   func(t *testing.T, got []types.Tenant)
	}{
		{
			name:    "empty list",
			input:   nil,
			wantErr: types.ErrNoTenants,
		},
		{
			name:    "duplicate ids",
			input:   []types.Tenant{{ID: "a", Name: "A"}, {ID: "a", Name: "B"}},
			wantErr: types.ErrDuplicateTenant,
		},
		{
			name:    "neither id nor name",
			input:   []types.Tenant{{ID: " ", Name: ""}},
			wantErr: types.ErrInvalidID,
		},
		{
			name:  "name-only tenant gets a stable derived id",
			input: []types.Tenant{{Name: "Tienda Norte"}},
			check: func(t *testing.T, got []types.Tenant) {
				require.Len(t, got, 1)
				assert.Equal(t, DeriveID("Tienda Norte"), got[0].ID)
				assert.Equal(t, DeriveID("Tienda Norte"), DeriveID("Tienda Norte"))
				assert.NotEqual(t, DeriveID("Tienda Norte"), DeriveID("Tienda Sur"))
			},
		},
		{
			name:  "id-only tenant uses id as name",
			input: []types.Tenant{{ID: " comp-9 "}},
			check: func(t *testing.T, got []types.Tenant) {
				assert.Equal(t, []types.Tenant{{ID: "comp-9", Name: "comp-9"}}, got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestNewRejectsEmptyDirectory(t *testing.T) {
	_, err := New(context.Background(), testutil.NewFlakyStore(), nil)
	assert.ErrorIs(t, err, types.ErrNoTenants)
}
