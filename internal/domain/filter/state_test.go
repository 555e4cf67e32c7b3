package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleSingleSelectReplaceAndClear(t *testing.T) {
	s := State{}

	s = Toggle(s, DimCategory, "Toys")
	assert.Equal(t, "Toys", s.Category)

	s = Toggle(s, DimCategory, "Books")
	assert.Equal(t, "Books", s.Category, "different value replaces")

	s = Toggle(s, DimCategory, "Books")
	assert.Empty(t, s.Category, "same value clears")
}

func TestToggleEnumDimensionsValidate(t *testing.T) {
	s := State{}

	s = Toggle(s, DimPriceRange, "premium")
	assert.Equal(t, PricePremium, s.PriceRange)

	unchanged := Toggle(s, DimPriceRange, "luxury")
	assert.Equal(t, s, unchanged, "unknown bucket is ignored")

	s = Toggle(s, DimStock, "outOfStock")
	assert.Equal(t, StockOut, s.StockStatus)

	s = Toggle(s, DimArrival, "newArrival")
	assert.Equal(t, ArrivalNew, s.ArrivalStatus)
}

func TestToggleFacetAddRemove(t *testing.T) {
	s := State{}

	s = Toggle(s, "color", "red")
	s = Toggle(s, "color", "blue")
	require.Len(t, s.Facets, 1)
	assert.Equal(t, []string{"red", "blue"}, s.Facets[0].Values)

	s = Toggle(s, "color", "red")
	assert.Equal(t, []string{"blue"}, s.Facets[0].Values)

	s = Toggle(s, "color", "blue")
	assert.Empty(t, s.Facets, "facet with no values is dropped")
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	base := State{
		Keyword:     "robot",
		Category:    "Toys",
		StockStatus: StockIn,
		Facets:      []FacetSelection{{Name: "color", Values: []string{"red"}}},
	}

	cases := []struct {
		dim   Dimension
		value string
	}{
		{DimCategory, "Books"},
		{DimCategory, "Toys"},
		{DimPriceRange, "budget"},
		{DimStock, "inStock"},
		{DimArrival, "regular"},
		{"color", "blue"},
		{"color", "red"},
		{"material", "wood"},
	}
	for _, tc := range cases {
		got := Toggle(Toggle(base, tc.dim, tc.value), tc.dim, tc.value)
		assert.Equal(t, base, got, "toggle twice must restore state for %s=%s", tc.dim, tc.value)
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	s := State{Facets: []FacetSelection{{Name: "color", Values: []string{"red"}}}}

	_ = Toggle(s, "color", "blue")

	assert.Equal(t, []string{"red"}, s.Facets[0].Values)
}

func TestClearAll(t *testing.T) {
	s := State{Keyword: "robot", Category: "Toys", PriceRange: PriceBudget}
	assert.True(t, ClearAll(s).IsZero())
}
