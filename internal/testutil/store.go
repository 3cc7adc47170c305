// Package testutil provides document store doubles for package tests.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mesh-intelligence/storefront/internal/docstore"
	"github.com/mesh-intelligence/storefront/pkg/types"
)

// ErrInjected is the cause reported by injected failures.
var ErrInjected = errors.New("injected failure")

// FlakyStore wraps a MemoryStore and fails Save or Load for chosen keys on
// demand. It counts saves per key.
type FlakyStore struct {
	*docstore.MemoryStore

	mu        sync.Mutex
	failSave  map[string]bool
	failLoad  map[string]bool
	saveCount map[string]int
}

// NewFlakyStore returns a FlakyStore with no failures armed.
func NewFlakyStore() *FlakyStore {
	return &FlakyStore{
		MemoryStore: docstore.NewMemoryStore(),
		failSave:    make(map[string]bool),
		failLoad:    make(map[string]bool),
		saveCount:   make(map[string]int),
	}
}

// FailSaves makes every Save of key fail until cleared.
func (s *FlakyStore) FailSaves(key string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSave[key] = fail
}

// FailLoads makes every Load of key fail until cleared.
func (s *FlakyStore) FailLoads(key string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLoad[key] = fail
}

// Saves returns how many successful saves key has seen.
func (s *FlakyStore) Saves(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCount[key]
}

// Load fails with ErrPersistenceLoad when armed for key.
func (s *FlakyStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	fail := s.failLoad[key]
	s.mu.Unlock()
	if fail {
		return nil, false, fmt.Errorf("%w: %v", types.ErrPersistenceLoad, ErrInjected)
	}
	return s.MemoryStore.Load(ctx, key)
}

// Save fails with ErrPersistenceWrite when armed for key.
func (s *FlakyStore) Save(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	fail := s.failSave[key]
	s.mu.Unlock()
	if fail {
		return fmt.Errorf("%w: %v", types.ErrPersistenceWrite, ErrInjected)
	}
	if err := s.MemoryStore.Save(ctx, key, data); err != nil {
		return err
	}
	s.mu.Lock()
	s.saveCount[key]++
	s.mu.Unlock()
	return nil
}
