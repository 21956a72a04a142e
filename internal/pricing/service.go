// internal/pricing/service.go
package pricing

import (
	"context"
	"errors"
	"fmt"

	"hw-quote/internal/domain"
	"hw-quote/internal/storage"
)

var ErrCatalogUnavailable = errors.New("catalog unavailable")

type Result struct {
	Total float64 `json:"total"`
}

type Service struct {
	store storage.CatalogStorage
}

func NewService(store storage.CatalogStorage) *Service {
	return &Service{store: store}
}

// Quote validates the request, reads the current catalog and prices the selections.
func (s *Service) Quote(ctx context.Context, req Request) (Result, error) {
	in, err := req.Validate()
	if err != nil {
		return Result{}, err
	}

	cat, err := s.load(ctx)
	if err != nil {
		return Result{}, err
	}

	total := Calculate(cat, in.Selections, in.DiscountID, in.SpecialReduction)
	return Result{Total: total}, nil
}

// Describe renders the configuration text for the given request.
func (s *Service) Describe(ctx context.Context, req Request) (string, error) {
	in, err := req.Validate()
	if err != nil {
		return "", err
	}
	cat, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return DescribeSelections(cat, in.Selections), nil
}

func (s *Service) load(ctx context.Context) (domain.Catalog, error) {
	cat, err := s.store.Load(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return cat, nil
}
