// internal/adapters/out/firestore/cart_storage_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CartStorageFS implements cart.Storage on Firestore.
//
// Collection design:
// - collection: client_state
// - docId: the storage key  (docId is the source of truth)
// - fields: value(bytes), updatedAt, expiresAt
//
// TTL:
// - Configure Firestore TTL on "expiresAt".
type CartStorageFS struct {
	Client *firestore.Client
	TTL    time.Duration
}

func NewCartStorageFS(client *firestore.Client) *CartStorageFS {
	return &CartStorageFS{Client: client, TTL: 30 * 24 * time.Hour}
}

func (s *CartStorageFS) col() *firestore.CollectionRef {
	return s.Client.Collection("client_state")
}

type stateDoc struct {
	Value     []byte    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}

// Get returns (nil, nil) if not found (nil policy).
func (s *CartStorageFS) Get(ctx context.Context, key string) ([]byte, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("cart_storage_fs: firestore client is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return nil, errors.New("cart_storage_fs: key is empty")
	}

	snap, err := s.col().Doc(docID(k)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc stateDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	return doc.Value, nil
}

// Set overwrites the full doc (simple and predictable).
func (s *CartStorageFS) Set(ctx context.Context, key string, value []byte) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_storage_fs: firestore client is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("cart_storage_fs: key is empty")
	}

	now := time.Now().UTC()
	doc := stateDoc{
		Value:     value,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.TTL),
	}
	_, err := s.col().Doc(docID(k)).Set(ctx, doc)
	return err
}

// Delete is idempotent; deleting a missing doc succeeds.
func (s *CartStorageFS) Delete(ctx context.Context, key string) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_storage_fs: firestore client is nil")
	}
	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("cart_storage_fs: key is empty")
	}

	_, err := s.col().Doc(docID(k)).Delete(ctx)
	return err
}

// docID replaces path separators; Firestore doc ids must not contain "/".
func docID(key string) string {
	return strings.ReplaceAll(key, "/", "_")
}
