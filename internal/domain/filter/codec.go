// internal/domain/filter/codec.go
package filter

import (
	"net/url"
	"strings"
)

// Codec translates between State and its canonical URL query form.
//
// The URL query string is the sole source of truth for filter state across
// reloads; nothing here touches storage or the network.
//
// KnownFacets carries the facet names in reference order (normally the
// order the tag-type definitions were loaded in). Facet keys in a query are
// matched against it case-insensitively and canonicalized to the known
// spelling. Unknown facet names are preserved opaquely so a round-trip
// survives even before definitions load.
type Codec struct {
	KnownFacets []string
}

// reserved query keys, in canonical emit order.
var reservedKeys = []string{"keyword", "category", "price_range", "stock", "arrival"}

func isReservedKey(k string) bool {
	for _, r := range reservedKeys {
		if k == r {
			return true
		}
	}
	return false
}

// Decode parses a query string (with or without a leading "?") into a
// State. Malformed pairs and unrecognized enum values are dropped silently;
// Decode never fails. Multi-value facet parameters are comma-separated and
// deduplicated preserving first-seen order.
func (c Codec) Decode(raw string) State {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "?")

	var s State
	if raw == "" {
		return s
	}

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, rawVal, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		if isReservedKey(strings.ToLower(key)) {
			val, err := url.QueryUnescape(rawVal)
			if err != nil {
				continue
			}
			val = strings.TrimSpace(val)
			if val == "" {
				continue
			}
			s.applyReserved(strings.ToLower(key), val)
			continue
		}

		// Facet key: values stay comma-separated in the raw (escaped) form,
		// so a literal comma inside a value survives as %2C.
		name := c.canonicalFacetName(key)
		for _, part := range strings.Split(rawVal, ",") {
			val, err := url.QueryUnescape(part)
			if err != nil {
				continue
			}
			val = strings.TrimSpace(val)
			if val == "" {
				continue
			}
			s.Facets = addFacetValue(s.Facets, name, val)
		}
	}

	s.Facets = c.sortFacets(s.Facets)
	return s
}

// Encode emits only non-empty fields in canonical order: keyword, category,
// price_range, stock, arrival, then known facets in reference order, then
// unknown facets in their stored order. Facet values join with commas in
// stored order.
func (c Codec) Encode(s State) string {
	var b strings.Builder

	emit := func(key, val string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(val)
	}

	if s.Keyword != "" {
		emit("keyword", url.QueryEscape(s.Keyword))
	}
	if s.Category != "" {
		emit("category", url.QueryEscape(s.Category))
	}
	if s.PriceRange != "" {
		emit("price_range", url.QueryEscape(string(s.PriceRange)))
	}
	if s.StockStatus != "" {
		emit("stock", url.QueryEscape(string(s.StockStatus)))
	}
	if s.ArrivalStatus != "" {
		emit("arrival", url.QueryEscape(string(s.ArrivalStatus)))
	}

	for _, f := range c.sortFacets(s.Facets) {
		if len(f.Values) == 0 {
			continue
		}
		escaped := make([]string, 0, len(f.Values))
		for _, v := range f.Values {
			escaped = append(escaped, url.QueryEscape(v))
		}
		emit(f.Name, strings.Join(escaped, ","))
	}

	return b.String()
}

func (s *State) applyReserved(key, val string) {
	switch key {
	case "keyword":
		if s.Keyword == "" {
			s.Keyword = val
		}
	case "category":
		if s.Category == "" {
			s.Category = val
		}
	case "price_range":
		if pr, ok := parsePriceRange(val); ok && s.PriceRange == "" {
			s.PriceRange = pr
		}
	case "stock":
		if st, ok := parseStockStatus(val); ok && s.StockStatus == "" {
			s.StockStatus = st
		}
	case "arrival":
		if ar, ok := parseArrivalStatus(val); ok && s.ArrivalStatus == "" {
			s.ArrivalStatus = ar
		}
	}
}

// canonicalFacetName maps a query key to the known facet spelling when one
// matches case-insensitively; otherwise the key is kept as seen.
func (c Codec) canonicalFacetName(key string) string {
	for _, known := range c.KnownFacets {
		if strings.EqualFold(known, key) {
			return known
		}
	}
	return key
}

func addFacetValue(facets []FacetSelection, name, value string) []FacetSelection {
	for i, f := range facets {
		if !strings.EqualFold(f.Name, name) {
			continue
		}
		for _, v := range f.Values {
			if v == value {
				return facets // duplicate, first-seen wins
			}
		}
		facets[i].Values = append(facets[i].Values, value)
		return facets
	}
	return append(facets, FacetSelection{Name: name, Values: []string{value}})
}

// sortFacets orders selections canonically: known facets in reference
// order first, then unknown ones in their existing relative order.
func (c Codec) sortFacets(facets []FacetSelection) []FacetSelection {
	if len(facets) == 0 {
		return nil
	}

	out := make([]FacetSelection, 0, len(facets))
	taken := make(map[int]bool, len(facets))

	for _, known := range c.KnownFacets {
		for i, f := range facets {
			if !taken[i] && strings.EqualFold(f.Name, known) {
				out = append(out, f)
				taken[i] = true
			}
		}
	}
	for i, f := range facets {
		if !taken[i] {
			out = append(out, f)
		}
	}
	return out
}
