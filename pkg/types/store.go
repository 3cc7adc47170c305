package types

import "context"

// Keys under which the two persisted entries live. They are independent:
// a failed write to one never touches the other.
const (
	KeyRootDocument = "crmData"
	KeyActiveTenant = "activeCompanyId"
)

// DocumentStore is the durable key/value boundary. Save is atomic per call:
// either the new bytes are fully visible to the next Load or the old ones are.
type DocumentStore interface {
	// Load returns the last saved bytes for key. The boolean is false when
	// the key was never saved.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save replaces the bytes stored under key. Failures wrap
	// ErrPersistenceWrite.
	Save(ctx context.Context, key string, data []byte) error

	// Close releases backend resources. Idempotent.
	Close() error
}

// Directory owns the tenant list and which tenant is active.
type Directory interface {
	// List returns every tenant in registration order.
	List() []Tenant

	// Active returns the active tenant, falling back to the first tenant
	// when the stored id is missing or unknown. Never fails.
	Active() Tenant

	// SetActive makes id the active tenant and persists the choice.
	// Returns ErrTenantNotFound if no tenant has that id.
	SetActive(ctx context.Context, id string) error
}

// Store provides per-tenant record and cart operations. Every operation acts
// on the tenant that is active at call time; every mutation is persisted
// before it returns.
type Store interface {
	// List returns the records of one collection in insertion order.
	List(t EntityType) ([]Record, error)

	// Get returns one record by id. Returns ErrRecordNotFound on a miss.
	Get(t EntityType, id string) (Record, error)

	// Add stamps id and fecha onto fields, appends the record, and returns
	// the stored copy.
	Add(ctx context.Context, t EntityType, fields Record) (Record, error)

	// Update replaces the record whose id matches record's id.
	// Returns ErrRecordNotFound on a miss; it never creates.
	Update(ctx context.Context, t EntityType, record Record) error

	// Delete removes the record with the given id. Deleting an unknown id
	// succeeds without effect.
	Delete(ctx context.Context, t EntityType, id string) error

	// AddToCart increments the quantity of productID by one.
	AddToCart(ctx context.Context, productID string) error

	// RemoveFromCart decrements the quantity of productID, removing the
	// entry instead of storing zero.
	RemoveFromCart(ctx context.Context, productID string) error

	// ClearCart empties the active tenant's cart.
	ClearCart(ctx context.Context) error

	// Cart returns a copy of the active tenant's cart.
	Cart() (Cart, error)

	// CartCount returns the sum of all cart quantities.
	CartCount() (int, error)
}
