// Package types defines the tenant, record, and cart types, the DocumentStore,
// Directory, and Store interfaces, and the standard errors for the storefront
// record store.
package types
