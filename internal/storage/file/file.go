// internal/storage/file/file.go
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"hw-quote/internal/domain"
)

const DefaultPath = "prices_data.json"

// Storage keeps the catalog in a single JSON document on disk.
type Storage struct {
	path string
}

func NewStorage(path string) *Storage {
	if path == "" {
		path = DefaultPath
	}
	return &Storage{path: path}
}

func (s *Storage) Path() string {
	return s.path
}

// Load reads the catalog. A missing, empty or corrupt file yields an empty
// catalog: the admin can always start over from the form.
func (s *Storage) Load(ctx context.Context) (domain.Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Catalog file not found, using empty catalog", "path", s.path)
		} else {
			slog.Warn("Catalog file unreadable, using empty catalog", "path", s.path, "error", err)
		}
		return domain.EmptyCatalog(), nil
	}

	catalog := domain.EmptyCatalog()
	if err := json.Unmarshal(raw, &catalog); err != nil {
		slog.Warn("Catalog file corrupt, using empty catalog", "path", s.path, "error", err)
		return domain.EmptyCatalog(), nil
	}
	catalog.Normalize()
	return catalog, nil
}

// Save serialises the catalog first and only then swaps the file in with a
// rename, so a failed write never leaves a half-written catalog behind.
func (s *Storage) Save(ctx context.Context, catalog domain.Catalog) error {
	catalog.Normalize()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalog); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".prices-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace catalog file: %w", err)
	}

	slog.Debug("Catalog saved", "path", s.path, "bytes", buf.Len())
	return nil
}
