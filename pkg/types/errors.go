package types

import "errors"

// Lookup errors. Callers treat these as recoverable: re-prompt for a tenant
// or refresh a stale view.
var (
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrRecordNotFound    = errors.New("record not found")
	ErrUnknownEntityType = errors.New("unknown entity type")
	ErrInvalidID         = errors.New("invalid id")
)

// Directory construction errors.
var (
	ErrNoTenants       = errors.New("tenant directory must not be empty")
	ErrDuplicateTenant = errors.New("duplicate tenant id")
)

// Persistence errors. A failed write leaves in-memory state as it was before
// the attempted mutation; a failed load is recovered by falling back to the
// seed dataset.
var (
	ErrPersistenceWrite = errors.New("persistence write failed")
	ErrPersistenceLoad  = errors.New("persistence load failed")
)

// ErrSessionClosed is returned by operations on a closed session.
var ErrSessionClosed = errors.New("session is closed")
