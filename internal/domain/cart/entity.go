// internal/domain/cart/entity.go
package cart

import (
	"encoding/json"
	"errors"
)

var ErrInvalidLine = errors.New("cart: invalid line")

// Line is one cart line item.
//
// Invariant after any mutation: 1 <= Quantity <= StockAtLastCheck.
// Violations are clamped, never rejected.
type Line struct {
	ProductID        int64   `json:"productId"`
	Name             string  `json:"name"`
	UnitPrice        float64 `json:"unitPrice"`
	Quantity         int     `json:"quantity"`
	StockAtLastCheck int     `json:"stockAtLastCheck"`
	ImageRef         string  `json:"imageRef"`
}

// LineTotal keeps full precision; rounding happens at display time only.
func (l Line) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Cart holds line items keyed by ProductID, insertion order preserved.
type Cart struct {
	lines []Line
}

// New builds a cart from existing lines (hydration). Lines with a
// non-positive ProductID are dropped; a duplicate ProductID replaces the
// earlier line in place; quantities are clamped.
func New(lines []Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.ProductID <= 0 {
			continue
		}
		c.AddOrUpdate(l)
	}
	return c
}

// AddOrUpdate replaces the quantity of an existing line for the same
// ProductID (never sums), or appends a new line preserving insertion order.
// Quantity is clamped into [1, StockAtLastCheck]; a non-positive stock
// count is treated as 1 so the interval stays satisfiable.
func (c *Cart) AddOrUpdate(l Line) Line {
	l = clamp(l)
	for i, cur := range c.lines {
		if cur.ProductID == l.ProductID {
			c.lines[i] = l
			return l
		}
	}
	c.lines = append(c.lines, l)
	return l
}

// Remove deletes the line for productID. Absent lines are a no-op, not an
// error.
func (c *Cart) Remove(productID int64) {
	for i, cur := range c.lines {
		if cur.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties all lines.
func (c *Cart) Clear() {
	c.lines = nil
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the line list in insertion order.
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Subtotal sums unitPrice*quantity over all lines at full precision.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.LineTotal()
	}
	return sum
}

// MarshalLines serializes the line list for the durable cart key.
func (c *Cart) MarshalLines() ([]byte, error) {
	return json.Marshal(c.Lines())
}

// UnmarshalLines parses a persisted line list. Callers treat any error as
// "empty cart" rather than propagating it.
func UnmarshalLines(data []byte) ([]Line, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func clamp(l Line) Line {
	if l.StockAtLastCheck < 1 {
		l.StockAtLastCheck = 1
	}
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	if l.Quantity > l.StockAtLastCheck {
		l.Quantity = l.StockAtLastCheck
	}
	return l
}
