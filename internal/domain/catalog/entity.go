// internal/domain/catalog/entity.go
package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Decimal decodes a JSON number that the backend may emit either as a bare
// number or as a quoted decimal string (DRF DecimalField default).
type Decimal float64

func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*d = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*d = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*d = Decimal(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*d = Decimal(f)
	return nil
}

// Tag is a backend-assigned product tag belonging to a tag type.
type Tag struct {
	TagType string `json:"tag_type"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

// Product mirrors one element of the store API's product list payload.
type Product struct {
	ID            int64   `json:"_id"`
	ProductName   string  `json:"productName"`
	Price         Decimal `json:"price"`
	Rating        Decimal `json:"rating"`
	NumReviews    int     `json:"numReviews"`
	Image         string  `json:"image"`
	StockCount    int     `json:"stockCount"`
	ArrivalStatus string  `json:"arrival_status"`
	Tags          []Tag   `json:"tags"`
}

// Category is a browsable product category.
type Category struct {
	ID   int64  `json:"_id"`
	Name string `json:"name"`
}

// FacetValue is one selectable value of a facet.
type FacetValue struct {
	Value string
	Label string
	Icon  string
}

// FacetDefinition is a dynamic filter dimension (tag type) the backend
// defines. Loaded once per session and treated as immutable afterwards.
type FacetDefinition struct {
	Name       string
	ColorToken string
	Values     []FacetValue
}

// FacetNames returns definition names in load order, for use as a filter
// codec's reference order.
func FacetNames(defs []FacetDefinition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Name)
	}
	return out
}
