// internal/domain/models.go
package domain

import (
	"fmt"
	"strings"
)

// PlaceholderName — название синтетической позиции "ничего не выбрано".
const PlaceholderName = "-- Please select --"

type Component struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}

type Discount struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// Catalog is the whole persisted price list. Categories is opaque metadata
// (category key -> display label) and is never derived from admin input.
type Catalog struct {
	Categories map[string]string      `json:"categories" yaml:"categories"`
	Components map[string][]Component `json:"components" yaml:"components"`
	Discounts  []Discount             `json:"discounts" yaml:"discounts"`
}

// Selection — выбор пользователя в одной категории.
type Selection struct {
	Category string  `json:"category"`
	ItemID   string  `json:"itemId"`
	Quantity float64 `json:"quantity"`
}

func EmptyCatalog() Catalog {
	return Catalog{
		Categories: map[string]string{},
		Components: map[string][]Component{},
		Discounts:  []Discount{},
	}
}

// Normalize replaces nil collections with empty ones so the catalog always
// serialises as objects/arrays, never null.
func (c *Catalog) Normalize() {
	if c.Categories == nil {
		c.Categories = map[string]string{}
	}
	if c.Components == nil {
		c.Components = map[string][]Component{}
	}
	if c.Discounts == nil {
		c.Discounts = []Discount{}
	}
}

func PlaceholderID(category string) string {
	return ComponentID(category, 0)
}

func ComponentID(category string, n int) string {
	return fmt.Sprintf("%s_%d", category, n)
}

func NewPlaceholder(category string) Component {
	return Component{ID: PlaceholderID(category), Name: PlaceholderName, Price: 0}
}

// DiscountID derives the stable id of a discount from its display name.
// Names that differ only by case or spaces map to the same id.
func DiscountID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// FindComponent looks up a component by exact (category, id) match.
func (c Catalog) FindComponent(category, itemID string) (Component, bool) {
	for _, comp := range c.Components[category] {
		if comp.ID == itemID {
			return comp, true
		}
	}
	return Component{}, false
}

// FindDiscount resolves a discount id. When several discounts share the id
// the last one in the list wins.
func (c Catalog) FindDiscount(id string) (Discount, bool) {
	for i := len(c.Discounts) - 1; i >= 0; i-- {
		if c.Discounts[i].ID == id {
			return c.Discounts[i], true
		}
	}
	return Discount{}, false
}

// CategoryOf returns the category prefix of a component id ("cpu_3" -> "cpu").
func CategoryOf(itemID string) (string, bool) {
	i := strings.LastIndex(itemID, "_")
	if i <= 0 {
		return "", false
	}
	return itemID[:i], true
}
