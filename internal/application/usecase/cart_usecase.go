// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	cartdom "github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/cart"
)

var ErrCartInvalidArgument = errors.New("cart_store: invalid argument")

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// CartStore owns the live cart. Every mutation is followed by a synchronous
// write to the injected key-value storage; mutations are serialized by an
// internal mutex so no two interleave.
type CartStore struct {
	mu      sync.Mutex
	cart    *cartdom.Cart
	storage cartdom.Storage
}

// NewCartStore hydrates the cart from storage. A read or parse failure
// yields an empty cart rather than an error; corrupt state is logged and
// discarded.
func NewCartStore(ctx context.Context, storage cartdom.Storage) *CartStore {
	s := &CartStore{storage: storage}

	data, err := storage.Get(ctx, cartdom.StorageKey)
	if err != nil {
		log.Printf("[cart_store] WARN: hydrate read failed, starting empty: %v", err)
		s.cart = cartdom.New(nil)
		return s
	}
	lines, err := cartdom.UnmarshalLines(data)
	if err != nil {
		log.Printf("[cart_store] WARN: persisted cart is corrupt, starting empty: %v", err)
		s.cart = cartdom.New(nil)
		return s
	}
	s.cart = cartdom.New(lines)
	return s
}

// AddOrUpdate replaces the line's quantity (never sums) and clamps it into
// [1, stockAtCheck], then persists.
func (s *CartStore) AddOrUpdate(ctx context.Context, line cartdom.Line) (cartdom.Line, error) {
	if line.ProductID <= 0 {
		return cartdom.Line{}, ErrCartInvalidArgument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	applied := s.cart.AddOrUpdate(line)
	if err := s.persistLocked(ctx); err != nil {
		return applied, err
	}
	return applied, nil
}

// Remove deletes the line if present; absent is a no-op, then persists.
func (s *CartStore) Remove(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Remove(productID)
	return s.persistLocked(ctx)
}

// Clear empties the cart and purges the durable key.
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	if err := s.storage.Delete(ctx, cartdom.StorageKey); err != nil {
		return fmt.Errorf("cart_store: purge failed: %w", err)
	}
	return nil
}

// Lines returns a copy of the current lines in insertion order.
func (s *CartStore) Lines() []cartdom.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// Len returns the current line count.
func (s *CartStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Len()
}

// Subtotal keeps full precision; use FormatAmount for display.
func (s *CartStore) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Subtotal()
}

func (s *CartStore) persistLocked(ctx context.Context) error {
	data, err := s.cart.MarshalLines()
	if err != nil {
		return fmt.Errorf("cart_store: marshal failed: %w", err)
	}
	if err := s.storage.Set(ctx, cartdom.StorageKey, data); err != nil {
		return fmt.Errorf("cart_store: persist failed: %w", err)
	}
	return nil
}

// FormatAmount renders an amount with two-decimal rounding. Internal
// arithmetic stays at full precision; rounding happens only here.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
