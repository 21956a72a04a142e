// internal/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"hw-quote/internal/domain"
	"hw-quote/internal/storage"
)

var (
	ErrLoadCatalog = errors.New("could not load catalog")
	ErrSaveCatalog = errors.New("could not save catalog")
)

type Service struct {
	store storage.CatalogStorage
}

func NewService(store storage.CatalogStorage) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context) (domain.Catalog, error) {
	cat, err := s.store.Load(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	return cat, nil
}

// Update reconciles an admin form submission against the stored catalog and
// writes the result back as a whole.
func (s *Service) Update(ctx context.Context, submission map[string]string) (domain.Catalog, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}

	updated := Reconcile(current, submission)

	if err := s.store.Save(ctx, updated); err != nil {
		slog.Error("Failed to save catalog", "error", err)
		return domain.Catalog{}, fmt.Errorf("%w: %w", ErrSaveCatalog, err)
	}

	slog.Info("Catalog updated", "categories", len(updated.Components), "discounts", len(updated.Discounts))
	return updated, nil
}

// Replace stores a complete catalog as is (used by imports).
func (s *Service) Replace(ctx context.Context, cat domain.Catalog) error {
	cat.Normalize()
	if err := s.store.Save(ctx, cat); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveCatalog, err)
	}
	return nil
}
