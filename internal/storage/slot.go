// Package storage provides the local key-value slot the record sequence is
// mirrored into. The slot is deliberately dumb: one opaque value per key,
// whole-value reads and writes. Interpretation of the value (a JSON array of
// records) belongs to the store layer.
package storage

import "context"

// Slot is a persistent local key-value store.
type Slot interface {
	// Get returns the value stored under key. The second return is false
	// when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key, replacing any previous value. Writes are
	// atomic per key.
	Set(ctx context.Context, key string, value []byte) error
	// Close releases backend resources.
	Close() error
}
