package storefront

import (
	"context"

	"github.com/mesh-intelligence/storefront/pkg/types"
)

// sessionDirectory is the Directory handed out by Session.Tenants. Reads are
// served from memory after Close; SetActive fails with ErrSessionClosed.
type sessionDirectory struct {
	s *Session
}

var _ types.Directory = (*sessionDirectory)(nil)

func (d *sessionDirectory) List() []types.Tenant { return d.s.dir.List() }

func (d *sessionDirectory) Active() types.Tenant { return d.s.dir.Active() }

func (d *sessionDirectory) SetActive(ctx context.Context, id string) error {
	return d.s.do(func() error { return d.s.dir.SetActive(ctx, id) })
}

// sessionStore is the Store handed out by Session.Records. Every call fails
// with ErrSessionClosed once the session is closed.
type sessionStore struct {
	s *Session
}

var _ types.Store = (*sessionStore)(nil)

func (r *sessionStore) List(t types.EntityType) (list []types.Record, err error) {
	err = r.s.do(func() error {
		list, err = r.s.records.List(t)
		return err
	})
	return list, err
}

func (r *sessionStore) Get(t types.EntityType, id string) (rec types.Record, err error) {
	err = r.s.do(func() error {
		rec, err = r.s.records.Get(t, id)
		return err
	})
	return rec, err
}

func (r *sessionStore) Add(ctx context.Context, t types.EntityType, fields types.Record) (rec types.Record, err error) {
	err = r.s.do(func() error {
		rec, err = r.s.records.Add(ctx, t, fields)
		return err
	})
	return rec, err
}

func (r *sessionStore) Update(ctx context.Context, t types.EntityType, record types.Record) error {
	return r.s.do(func() error { return r.s.records.Update(ctx, t, record) })
}

func (r *sessionStore) Delete(ctx context.Context, t types.EntityType, id string) error {
	return r.s.do(func() error { return r.s.records.Delete(ctx, t, id) })
}

func (r *sessionStore) AddToCart(ctx context.Context, productID string) error {
	return r.s.do(func() error { return r.s.records.AddToCart(ctx, productID) })
}

func (r *sessionStore) RemoveFromCart(ctx context.Context, productID string) error {
	return r.s.do(func() error { return r.s.records.RemoveFromCart(ctx, productID) })
}

func (r *sessionStore) ClearCart(ctx context.Context) error {
	return r.s.do(func() error { return r.s.records.ClearCart(ctx) })
}

func (r *sessionStore) Cart() (cart types.Cart, err error) {
	err = r.s.do(func() error {
		cart, err = r.s.records.Cart()
		return err
	})
	return cart, err
}

func (r *sessionStore) CartCount() (n int, err error) {
	err = r.s.do(func() error {
		n, err = r.s.records.CartCount()
		return err
	})
	return n, err
}
