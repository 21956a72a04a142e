// internal/storage/memory/memory.go
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"hw-quote/internal/domain"
)

// Storage keeps the catalog in process memory. Every Load returns a deep
// copy so callers never share slices with the stored state.
type Storage struct {
	mu      sync.Mutex
	catalog domain.Catalog
	saveErr error
	saves   int
}

func NewStorage(initial domain.Catalog) *Storage {
	initial.Normalize()
	c, err := clone(initial)
	if err != nil {
		panic(fmt.Sprintf("memory storage: %v", err))
	}
	return &Storage{catalog: c}
}

func (s *Storage) Load(ctx context.Context) (domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.catalog)
}

func (s *Storage) Save(ctx context.Context, catalog domain.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	catalog.Normalize()
	c, err := clone(catalog)
	if err != nil {
		return err
	}
	s.catalog = c
	s.saves++
	return nil
}

// FailSaves makes every following Save return err (nil restores normal behaviour).
func (s *Storage) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Saves reports how many successful writes happened.
func (s *Storage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// clone round-trips through JSON, so it fails exactly where the file
// storage would.
func clone(c domain.Catalog) (domain.Catalog, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("encode catalog: %w", err)
	}
	out := domain.EmptyCatalog()
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	out.Normalize()
	return out, nil
}
