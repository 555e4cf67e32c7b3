// internal/domain/cart/storage_port.go
package cart

import "context"

// StorageKey is the single durable key holding the serialized cart line
// list. Filter state is never persisted; the URL query string owns it.
const StorageKey = "storefront:cart"

// Storage is a minimal key-value persistence port injected into the cart
// store. Implementations exist for memory, file, Firestore, Postgres and
// Redis backends.
//
// Not-found policy:
// - Get returns (nil, nil) for an absent key.
// - Delete on an absent key is a no-op.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
