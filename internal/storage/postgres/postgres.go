// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"hw-quote/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

// === CatalogStorage ===

func (s *Storage) Load(ctx context.Context) (domain.Catalog, error) {
	catalog := domain.EmptyCatalog()

	rows, err := s.db.Query(ctx, "SELECT key, label FROM catalog_categories")
	if err != nil {
		return catalog, fmt.Errorf("query categories: %w", err)
	}
	for rows.Next() {
		var key, label string
		if err := rows.Scan(&key, &label); err != nil {
			rows.Close()
			return catalog, fmt.Errorf("scan category: %w", err)
		}
		catalog.Categories[key] = label
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return catalog, fmt.Errorf("iterate categories: %w", err)
	}

	rows, err = s.db.Query(ctx, `
		SELECT category, id, name, price
		FROM catalog_components
		ORDER BY category, position
	`)
	if err != nil {
		return catalog, fmt.Errorf("query components: %w", err)
	}
	for rows.Next() {
		var category string
		var c domain.Component
		if err := rows.Scan(&category, &c.ID, &c.Name, &c.Price); err != nil {
			rows.Close()
			return catalog, fmt.Errorf("scan component: %w", err)
		}
		catalog.Components[category] = append(catalog.Components[category], c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return catalog, fmt.Errorf("iterate components: %w", err)
	}

	rows, err = s.db.Query(ctx, "SELECT id, name, multiplier FROM catalog_discounts ORDER BY position")
	if err != nil {
		return catalog, fmt.Errorf("query discounts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d domain.Discount
		if err := rows.Scan(&d.ID, &d.Name, &d.Multiplier); err != nil {
			return catalog, fmt.Errorf("scan discount: %w", err)
		}
		catalog.Discounts = append(catalog.Discounts, d)
	}
	if err := rows.Err(); err != nil {
		return catalog, fmt.Errorf("iterate discounts: %w", err)
	}

	return catalog, nil
}

// Save replaces the stored catalog inside one transaction: either the new
// catalog is fully visible or the old one stays untouched.
func (s *Storage) Save(ctx context.Context, catalog domain.Catalog) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"catalog_categories", "catalog_components", "catalog_discounts"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	batch := &pgx.Batch{}
	for key, label := range catalog.Categories {
		batch.Queue("INSERT INTO catalog_categories (key, label) VALUES ($1, $2)", key, label)
	}

	// стабильный порядок вставки, чтобы ошибки воспроизводились
	categories := make([]string, 0, len(catalog.Components))
	for category := range catalog.Components {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		for pos, c := range catalog.Components[category] {
			batch.Queue(`
				INSERT INTO catalog_components (category, position, id, name, price)
				VALUES ($1, $2, $3, $4, $5)
			`, category, pos, c.ID, c.Name, c.Price)
		}
	}

	for pos, d := range catalog.Discounts {
		batch.Queue(`
			INSERT INTO catalog_discounts (position, id, name, multiplier)
			VALUES ($1, $2, $3, $4)
		`, pos, d.ID, d.Name, d.Multiplier)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert catalog: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	slog.Debug("Catalog saved", "categories", len(catalog.Categories), "component_groups", len(catalog.Components), "discounts", len(catalog.Discounts))
	return nil
}
