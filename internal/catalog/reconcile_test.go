package catalog

import (
	"encoding/json"
	"testing"

	"hw-quote/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(list []domain.Component) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func names(list []domain.Component) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Name
	}
	return out
}

func TestReconcile_NumericOrderAndDenseIDs(t *testing.T) {
	form := map[string]string{
		"component-cpu-10-name":  "Ten",
		"component-cpu-10-price": "10",
		"component-cpu-2-name":   "Two",
		"component-cpu-2-price":  "2",
		"component-cpu-1-name":   "One",
		"component-cpu-1-price":  "1",
	}

	got := Reconcile(domain.EmptyCatalog(), form)

	cpu := got.Components["cpu"]
	require.Len(t, cpu, 4)
	assert.Equal(t, []string{"cpu_0", "cpu_1", "cpu_2", "cpu_3"}, ids(cpu))
	assert.Equal(t, []string{domain.PlaceholderName, "One", "Two", "Ten"}, names(cpu))
	assert.Equal(t, 10.0, cpu[3].Price)
}

func TestReconcile_PlaceholderAlwaysFirst(t *testing.T) {
	form := map[string]string{
		"component-gpu-0-name":  "   ",
		"component-gpu-0-price": "100",
	}

	got := Reconcile(domain.EmptyCatalog(), form)

	gpu, ok := got.Components["gpu"]
	require.True(t, ok, "category seen in the form must exist even without valid rows")
	require.Len(t, gpu, 1)
	assert.Equal(t, domain.NewPlaceholder("gpu"), gpu[0])
}

func TestReconcile_SkipsInvalidPriceAndRenumbers(t *testing.T) {
	form := map[string]string{
		"component-ram-0-name":  "8GB",
		"component-ram-0-price": "200",
		"component-ram-1-name":  "Broken",
		"component-ram-1-price": "abc",
		"component-ram-2-name":  "  16GB  ",
		"component-ram-2-price": " 350.5 ",
		"component-ram-3-name":  "",
		"component-ram-3-price": "999",
		"component-ram-4-name":  "32GB",
		"component-ram-4-price": "",
		"component-ram-5-name":  "64GB",
		"component-ram-5-price": "1.2e3",
	}

	got := Reconcile(domain.EmptyCatalog(), form)

	assert.Equal(t, []domain.Component{
		domain.NewPlaceholder("ram"),
		{ID: "ram_1", Name: "8GB", Price: 200},
		{ID: "ram_2", Name: "16GB", Price: 350.5},
		{ID: "ram_3", Name: "64GB", Price: 1200},
	}, got.Components["ram"])
}

func TestReconcile_MissingPriceKeyDefaultsToZero(t *testing.T) {
	got := Reconcile(domain.EmptyCatalog(), map[string]string{
		"component-case-3-name": "Tower",
	})

	assert.Equal(t, []domain.Component{
		domain.NewPlaceholder("case"),
		{ID: "case_1", Name: "Tower", Price: 0},
	}, got.Components["case"])
}

func TestReconcile_RejectsNonFiniteNumbers(t *testing.T) {
	got := Reconcile(domain.EmptyCatalog(), map[string]string{
		"component-cpu-0-name":  "Nan",
		"component-cpu-0-price": "NaN",
		"component-cpu-1-name":  "Inf",
		"component-cpu-1-price": "inf",
		"component-cpu-2-name":  "Overflow",
		"component-cpu-2-price": "1e400",
		"discount-0-name":       "Huge",
		"discount-0-multiplier": "-1e400",
	})

	assert.Len(t, got.Components["cpu"], 1)
	assert.Empty(t, got.Discounts)

	_, err := json.Marshal(got)
	assert.NoError(t, err)
}

func TestReconcile_NegativePriceAccepted(t *testing.T) {
	got := Reconcile(domain.EmptyCatalog(), map[string]string{
		"component-promo-0-name":  "Coupon",
		"component-promo-0-price": "-50",
	})

	require.Len(t, got.Components["promo"], 2)
	assert.Equal(t, -50.0, got.Components["promo"][1].Price)
}

func TestReconcile_DashedCategory(t *testing.T) {
	got := Reconcile(domain.EmptyCatalog(), map[string]string{
		"component-hdd-ssd-1-name":  "NVMe 1TB",
		"component-hdd-ssd-1-price": "450",
	})

	require.Contains(t, got.Components, "hdd-ssd")
	assert.Equal(t, "hdd-ssd_1", got.Components["hdd-ssd"][1].ID)
}

func TestReconcile_MalformedKeysIgnored(t *testing.T) {
	got := Reconcile(domain.EmptyCatalog(), map[string]string{
		"component-cpu":           "x",
		"component-cpu-x-name":    "bad index",
		"component--1-name":       "no category",
		"discount-name":           "no index",
		"discount-a-name":         "bad index",
		"csrf_token":              "abc",
		"component-cpu-1-name":    "Good",
		"component-cpu-1-price":   "1",
		"discount-1-2-multiplier": "0.5",
	})

	assert.Len(t, got.Components, 1)
	assert.Len(t, got.Components["cpu"], 2)
	assert.Empty(t, got.Discounts)
}

func TestReconcile_Discounts(t *testing.T) {
	form := map[string]string{
		"discount-10-name":       "Student",
		"discount-10-multiplier": "0.95",
		"discount-2-name":        " VIP Member ",
		"discount-2-multiplier":  "0.9",
		"discount-3-name":        "Broken",
		"discount-3-multiplier":  "ninety",
		"discount-4-name":        "",
		"discount-4-multiplier":  "0.5",
		"discount-5-name":        "Full Price",
	}

	got := Reconcile(domain.EmptyCatalog(), form)

	assert.Equal(t, []domain.Discount{
		{ID: "vip_member", Name: "VIP Member", Multiplier: 0.9},
		{ID: "full_price", Name: "Full Price", Multiplier: 1.0},
		{ID: "student", Name: "Student", Multiplier: 0.95},
	}, got.Discounts)
}

func TestReconcile_DiscountSlugCollisionKeepsBoth(t *testing.T) {
	got := Reconcile(domain.EmptyCatalog(), map[string]string{
		"discount-0-name":       "VIP",
		"discount-0-multiplier": "0.9",
		"discount-1-name":       "vip",
		"discount-1-multiplier": "0.8",
	})

	require.Len(t, got.Discounts, 2)
	d, ok := got.FindDiscount("vip")
	require.True(t, ok)
	assert.Equal(t, 0.8, d.Multiplier, "last one wins")
}

func TestReconcile_ReplacesWholesaleAndKeepsCategories(t *testing.T) {
	current := domain.Catalog{
		Categories: map[string]string{"cpu": "Processor", "gpu": "Graphics"},
		Components: map[string][]domain.Component{
			"gpu": {domain.NewPlaceholder("gpu"), {ID: "gpu_1", Name: "Old", Price: 1}},
		},
		Discounts: []domain.Discount{{ID: "old", Name: "Old", Multiplier: 0.5}},
	}

	got := Reconcile(current, map[string]string{
		"component-cpu-0-name":  "New",
		"component-cpu-0-price": "5",
	})

	assert.Equal(t, current.Categories, got.Categories)
	assert.NotContains(t, got.Components, "gpu")
	assert.Empty(t, got.Discounts)
}

func TestReconcile_Idempotent(t *testing.T) {
	form := map[string]string{
		"component-cpu-7-name":  "B",
		"component-cpu-7-price": "2",
		"component-cpu-3-name":  "A",
		"component-cpu-3-price": "1",
		"discount-0-name":       "VIP",
		"discount-0-multiplier": "0.9",
	}

	first := Reconcile(domain.EmptyCatalog(), form)
	second := Reconcile(first, form)

	assert.Equal(t, first, second)
}

func TestReconcile_EmptySubmission(t *testing.T) {
	got := Reconcile(domain.Catalog{}, map[string]string{})

	assert.NotNil(t, got.Categories)
	assert.Empty(t, got.Components)
	assert.Empty(t, got.Discounts)
}
