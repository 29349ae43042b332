package ports

import "context"

// KVStore is the durable key-value slot the wizard persists into.
// It plays the role of the browser's local storage.
type KVStore interface {
	// Get returns the raw value stored under key.
	// Returns domain.ErrKeyNotFound if the key holds no value.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key starting with prefix, in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
