package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "github.com/Conrad-Tinio/CS121-Online-Store/internal/domain/cart"
)

type mockStorage struct {
	data    map[string][]byte
	sets    int
	deletes int
	getErr  error
	setErr  error
}

func newMockStorage() *mockStorage {
	return &mockStorage{data: map[string][]byte{}}
}

func (m *mockStorage) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *mockStorage) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *mockStorage) Delete(_ context.Context, key string) error {
	m.deletes++
	delete(m.data, key)
	return nil
}

func TestCartStoreEveryMutationPersists(t *testing.T) {
	ctx := context.Background()
	st := newMockStorage()
	s := NewCartStore(ctx, st)

	_, err := s.AddOrUpdate(ctx, cartdom.Line{ProductID: 1, Quantity: 2, StockAtLastCheck: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, st.sets)

	require.NoError(t, s.Remove(ctx, 1))
	assert.Equal(t, 2, st.sets)

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, 1, st.deletes)
	assert.NotContains(t, st.data, cartdom.StorageKey)
}

func TestCartStoreHydratesFromStorage(t *testing.T) {
	ctx := context.Background()
	st := newMockStorage()

	first := NewCartStore(ctx, st)
	_, err := first.AddOrUpdate(ctx, cartdom.Line{ProductID: 1, Name: "Robot", UnitPrice: 100, Quantity: 2, StockAtLastCheck: 5})
	require.NoError(t, err)

	second := NewCartStore(ctx, st)
	require.Equal(t, 1, second.Len())
	assert.Equal(t, "Robot", second.Lines()[0].Name)
	assert.InDelta(t, 200, second.Subtotal(), 1e-9)
}

func TestCartStoreCorruptPersistedDataYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	st := newMockStorage()
	st.data[cartdom.StorageKey] = []byte("{definitely not json")

	s := NewCartStore(ctx, st)
	assert.Equal(t, 0, s.Len())
}

func TestCartStoreReadFailureYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	st := newMockStorage()
	st.getErr = errors.New("backend down")

	s := NewCartStore(ctx, st)
	assert.Equal(t, 0, s.Len())
}

func TestCartStoreClampAndReplace(t *testing.T) {
	ctx := context.Background()
	s := NewCartStore(ctx, newMockStorage())

	got, err := s.AddOrUpdate(ctx, cartdom.Line{ProductID: 1, Quantity: 10, StockAtLastCheck: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)

	got, err = s.AddOrUpdate(ctx, cartdom.Line{ProductID: 1, Quantity: 2, StockAtLastCheck: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity, "replace, not sum")
	assert.Equal(t, 1, s.Len())
}

func TestCartStoreRejectsInvalidProductID(t *testing.T) {
	ctx := context.Background()
	s := NewCartStore(ctx, newMockStorage())

	_, err := s.AddOrUpdate(ctx, cartdom.Line{ProductID: 0, Quantity: 1, StockAtLastCheck: 1})
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "250.00", FormatAmount(250))
	assert.Equal(t, "19.99", FormatAmount(19.99))
	assert.Equal(t, "0.10", FormatAmount(0.1))
}
