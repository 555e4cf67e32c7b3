// internal/domain/filter/state.go
package filter

import "strings"

// PriceRange is the discrete price bucket facet.
// The continuous min/max form used by earlier revisions is deprecated and
// not accepted here.
type PriceRange string

const (
	PriceBudget   PriceRange = "budget"
	PriceMidRange PriceRange = "midRange"
	PricePremium  PriceRange = "premium"
)

// StockStatus filters by availability.
type StockStatus string

const (
	StockIn  StockStatus = "inStock"
	StockOut StockStatus = "outOfStock"
)

// ArrivalStatus filters by product arrival.
type ArrivalStatus string

const (
	ArrivalNew     ArrivalStatus = "newArrival"
	ArrivalRegular ArrivalStatus = "regular"
)

// Dimension names a single-select filter dimension for Toggle.
// Any other string passed as a dimension is treated as a facet name
// (multi-select).
type Dimension string

const (
	DimCategory   Dimension = "category"
	DimPriceRange Dimension = "price_range"
	DimStock      Dimension = "stock"
	DimArrival    Dimension = "arrival"
)

// FacetSelection is one active multi-select facet: a facet name plus its
// selected values in first-seen order, deduplicated.
type FacetSelection struct {
	Name   string
	Values []string
}

// State is the canonical in-memory filter state.
//
// Invariant: every field is either empty or holds a non-empty value.
// Keyword/Category are free-form; PriceRange/StockStatus/ArrivalStatus are
// single-select enums; Facets holds multi-select facets in a stable order
// (reference order for known facets, first-seen order for unknown ones).
type State struct {
	Keyword       string
	Category      string
	PriceRange    PriceRange
	StockStatus   StockStatus
	ArrivalStatus ArrivalStatus
	Facets        []FacetSelection
}

// IsZero reports whether no filter is active.
func (s State) IsZero() bool {
	return s.Keyword == "" &&
		s.Category == "" &&
		s.PriceRange == "" &&
		s.StockStatus == "" &&
		s.ArrivalStatus == "" &&
		len(s.Facets) == 0
}

// Clone returns a deep copy. State values handed out by Toggle/Decode never
// alias each other's facet slices.
func (s State) Clone() State {
	out := s
	if len(s.Facets) > 0 {
		out.Facets = make([]FacetSelection, len(s.Facets))
		for i, f := range s.Facets {
			out.Facets[i] = FacetSelection{
				Name:   f.Name,
				Values: append([]string(nil), f.Values...),
			}
		}
	} else {
		out.Facets = nil
	}
	return out
}

// FacetValues returns the selected values for a facet name
// (case-insensitive), or nil when the facet is not active.
func (s State) FacetValues(name string) []string {
	for _, f := range s.Facets {
		if strings.EqualFold(f.Name, name) {
			return append([]string(nil), f.Values...)
		}
	}
	return nil
}

// Toggle returns a new State with the given dimension/value toggled.
//
// Single-select dimensions (category, price_range, stock, arrival): setting
// the currently active value clears it, anything else replaces it. Values
// that are not valid for an enum dimension leave the state unchanged.
//
// Any other dimension string is treated as a facet name: the value is added
// when absent and removed when present. A facet with no remaining values is
// dropped from the state.
func Toggle(s State, dim Dimension, value string) State {
	out := s.Clone()
	value = strings.TrimSpace(value)
	if value == "" {
		return out
	}

	switch dim {
	case DimCategory:
		if out.Category == value {
			out.Category = ""
		} else {
			out.Category = value
		}
	case DimPriceRange:
		pr, ok := parsePriceRange(value)
		if !ok {
			return out
		}
		if out.PriceRange == pr {
			out.PriceRange = ""
		} else {
			out.PriceRange = pr
		}
	case DimStock:
		st, ok := parseStockStatus(value)
		if !ok {
			return out
		}
		if out.StockStatus == st {
			out.StockStatus = ""
		} else {
			out.StockStatus = st
		}
	case DimArrival:
		ar, ok := parseArrivalStatus(value)
		if !ok {
			return out
		}
		if out.ArrivalStatus == ar {
			out.ArrivalStatus = ""
		} else {
			out.ArrivalStatus = ar
		}
	default:
		out.Facets = toggleFacetValue(out.Facets, string(dim), value)
	}
	return out
}

// ClearAll returns the empty State.
func ClearAll(State) State {
	return State{}
}

func toggleFacetValue(facets []FacetSelection, name, value string) []FacetSelection {
	for i, f := range facets {
		if !strings.EqualFold(f.Name, name) {
			continue
		}
		for j, v := range f.Values {
			if v != value {
				continue
			}
			// present -> remove
			vals := append(append([]string(nil), f.Values[:j]...), f.Values[j+1:]...)
			if len(vals) == 0 {
				return append(append([]FacetSelection(nil), facets[:i]...), facets[i+1:]...)
			}
			out := append([]FacetSelection(nil), facets...)
			out[i].Values = vals
			return out
		}
		// absent -> add
		out := append([]FacetSelection(nil), facets...)
		out[i].Values = append(append([]string(nil), f.Values...), value)
		return out
	}
	return append(append([]FacetSelection(nil), facets...), FacetSelection{
		Name:   name,
		Values: []string{value},
	})
}

func parsePriceRange(v string) (PriceRange, bool) {
	switch PriceRange(v) {
	case PriceBudget, PriceMidRange, PricePremium:
		return PriceRange(v), true
	}
	return "", false
}

func parseStockStatus(v string) (StockStatus, bool) {
	switch StockStatus(v) {
	case StockIn, StockOut:
		return StockStatus(v), true
	}
	return "", false
}

func parseArrivalStatus(v string) (ArrivalStatus, bool) {
	switch ArrivalStatus(v) {
	case ArrivalNew, ArrivalRegular:
		return ArrivalStatus(v), true
	}
	return "", false
}
