package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/valueprop/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunKVStoreContract runs a suite of tests to verify that a KVStore implementation
// adheres to the defined interface contract.
func RunKVStoreContract(t *testing.T, store KVStore) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405") + "_"

	t.Run("Set and Get", func(t *testing.T) {
		key := prefix + "value"
		payload := []byte(`{"audience":"executives"}`)

		require.NoError(t, store.Set(ctx, key, payload), "Set should not return error")

		got, err := store.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, payload, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		key := prefix + "overwrite"
		require.NoError(t, store.Set(ctx, key, []byte("first")))
		require.NoError(t, store.Set(ctx, key, []byte("second")))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, prefix+"missing")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		key := prefix + "delete"
		require.NoError(t, store.Set(ctx, key, []byte("x")))

		require.NoError(t, store.Delete(ctx, key), "Delete should not return error")

		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound, "Get after Delete should return ErrKeyNotFound")

		assert.NoError(t, store.Delete(ctx, key), "Deleting twice should be a no-op")
	})

	t.Run("Keys", func(t *testing.T) {
		k1 := prefix + "list_a"
		k2 := prefix + "list_b"
		other := "other-" + prefix
		require.NoError(t, store.Set(ctx, k2, []byte("2")))
		require.NoError(t, store.Set(ctx, k1, []byte("1")))
		require.NoError(t, store.Set(ctx, other, []byte("3")))

		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
			_ = store.Delete(ctx, other)
		}()

		keys, err := store.Keys(ctx, prefix+"list_")
		require.NoError(t, err)
		assert.Equal(t, []string{k1, k2}, keys)
	})
}
