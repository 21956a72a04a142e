// cmd/catalogctl/yaml.go
package main

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"hw-quote/internal/domain"

	"gopkg.in/yaml.v3"
)

func encodeCatalog(w io.Writer, cat domain.Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cat); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}

// decodeCatalog reads a catalog document and rejects values the pricing
// code cannot work with (YAML happily accepts .nan and .inf).
func decodeCatalog(data []byte) (domain.Catalog, error) {
	var cat domain.Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil && err != io.EOF {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	cat.Normalize()

	for category, items := range cat.Components {
		for i, c := range items {
			if c.ID == "" {
				return domain.Catalog{}, fmt.Errorf("components.%s[%d]: empty id", category, i)
			}
			if !finite(c.Price) {
				return domain.Catalog{}, fmt.Errorf("components.%s[%d] (%s): price is not a finite number", category, i, c.ID)
			}
		}
	}
	for i, d := range cat.Discounts {
		if d.ID == "" {
			return domain.Catalog{}, fmt.Errorf("discounts[%d]: empty id", i)
		}
		if !finite(d.Multiplier) {
			return domain.Catalog{}, fmt.Errorf("discounts[%d] (%s): multiplier is not a finite number", i, d.ID)
		}
	}
	return cat, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
