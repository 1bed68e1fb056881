// Package storage holds the key-value adapters the watchlist persists through.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

// Adapter is a key-value byte-string medium.
type Adapter interface {
	// Read returns ErrNotFound when key is absent.
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	// Clear removes key. Clearing an absent key is not an error.
	Clear(ctx context.Context, key string) error
}
