package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hw-quote/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() domain.Catalog {
	return domain.Catalog{
		Categories: map[string]string{"cpu": "Процессор"},
		Components: map[string][]domain.Component{
			"cpu": {
				domain.NewPlaceholder("cpu"),
				{ID: "cpu_1", Name: "Intel i5 <box>", Price: 1800},
			},
		},
		Discounts: []domain.Discount{{ID: "vip", Name: "VIP", Multiplier: 0.9}},
	}
}

func TestStorage_LoadMissingFile(t *testing.T) {
	s := NewStorage(filepath.Join(t.TempDir(), "missing.json"))

	cat, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cat.Categories)
	assert.Empty(t, cat.Components)
	assert.NotNil(t, cat.Discounts)
}

func TestStorage_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cat, err := NewStorage(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cat.Components)
	assert.Empty(t, cat.Discounts)
}

func TestStorage_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.json")
	s := NewStorage(path)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleCatalog()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleCatalog(), got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Процессор", "non-ASCII text is stored as is")
	assert.Contains(t, string(raw), "<box>")
}

func TestStorage_SaveReplacesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.json")
	s := NewStorage(path)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleCatalog()))
	require.NoError(t, s.Save(ctx, domain.EmptyCatalog()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Components)
	assert.Empty(t, got.Discounts)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStorage_SaveIntoMissingDirFails(t *testing.T) {
	s := NewStorage(filepath.Join(t.TempDir(), "nope", "prices.json"))

	err := s.Save(context.Background(), sampleCatalog())
	assert.Error(t, err)
}
