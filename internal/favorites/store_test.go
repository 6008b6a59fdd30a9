// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/favorites"
)

// blobStoreFactory returns a fresh store plus a way to write behind its back.
type blobStoreFactory func(t *testing.T) (favorites.BlobStore, func(key, value string))

func blobStores() map[string]blobStoreFactory {
	return map[string]blobStoreFactory{
		"memory": func(t *testing.T) (favorites.BlobStore, func(key, value string)) {
			store := favorites.NewMemoryBlobStore()
			return store, func(key, value string) {
				require.NoError(t, store.Update(context.Background(), key, func([]byte) ([]byte, error) {
					return []byte(value), nil
				}))
			}
		},
		"redis": func(t *testing.T) (favorites.BlobStore, func(key, value string)) {
			server := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: server.Addr()})
			other := redis.NewClient(&redis.Options{Addr: server.Addr()})
			t.Cleanup(func() {
				_ = client.Close()
				_ = other.Close()
			})
			return favorites.NewRedisBlobStore(client), func(key, value string) {
				require.NoError(t, other.Set(context.Background(), key, value, 0).Err())
			}
		},
	}
}

/*
TestBlobStore_LoadUpdate covers the absent key, a write and a skipped write.
*/
func TestBlobStore_LoadUpdate(t *testing.T) {
	for name, factory := range blobStores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store, _ := factory(t)

			value, err := store.Load(ctx, "k")
			require.NoError(t, err)
			assert.Nil(t, value)

			require.NoError(t, store.Update(ctx, "k", func(current []byte) ([]byte, error) {
				assert.Nil(t, current)
				return []byte(`["a"]`), nil
			}))

			require.NoError(t, store.Update(ctx, "k", func(current []byte) ([]byte, error) {
				assert.Equal(t, `["a"]`, string(current))
				return nil, nil
			}))

			value, err = store.Load(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, `["a"]`, string(value))
		})
	}
}

/*
TestBlobStore_Update_RetriesOnConflict re-runs mutate after a concurrent write.
*/
func TestBlobStore_Update_RetriesOnConflict(t *testing.T) {
	for name, factory := range blobStores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store, writeBehind := factory(t)

			var seen []string
			err := store.Update(ctx, "k", func(current []byte) ([]byte, error) {
				seen = append(seen, string(current))
				if len(seen) == 1 {
					writeBehind("k", "other")
				}
				return append(current, '!'), nil
			})
			require.NoError(t, err)

			assert.Equal(t, []string{"", "other"}, seen)
			value, err := store.Load(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "other!", string(value))
		})
	}
}

/*
TestBlobStore_Update_GivesUp returns ErrWriteConflict when every attempt races.
*/
func TestBlobStore_Update_GivesUp(t *testing.T) {
	for name, factory := range blobStores() {
		t.Run(name, func(t *testing.T) {
			store, writeBehind := factory(t)

			attempts := 0
			err := store.Update(context.Background(), "k", func(current []byte) ([]byte, error) {
				attempts++
				writeBehind("k", string(rune('a'+attempts)))
				return []byte("mine"), nil
			})

			assert.ErrorIs(t, err, favorites.ErrWriteConflict)
			assert.Equal(t, 8, attempts)
		})
	}
}

/*
TestMemoryBlobStore_CanceledContext stops before touching the store.
*/
func TestMemoryBlobStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := favorites.NewMemoryBlobStore()
	_, err := store.Load(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)

	err = store.Update(ctx, "k", func([]byte) ([]byte, error) {
		t.Fatal("mutate must not run")
		return nil, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
