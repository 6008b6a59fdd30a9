// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/catalog"
	"github.com/taibuivan/bookshelf/internal/favorites"
	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/internal/platform/metrics"
)

var errStorage = errors.New("storage down")

var (
	guest = favorites.Owner{DeviceID: "device-1"}
	user  = favorites.Owner{UserID: "user-1"}
)

// fakeDocuments is an in-memory [favorites.DocumentStore] ordered newest first.
type fakeDocuments struct {
	mu        sync.Mutex
	docs      map[string][]catalog.Raw
	calls     int
	listErr   error
	upsertErr error
	deleteErr error
}

func newFakeDocuments() *fakeDocuments {
	return &fakeDocuments{docs: map[string][]catalog.Raw{}}
}

func (store *fakeDocuments) List(ctx context.Context, userID string) ([]catalog.Raw, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.calls++
	if store.listErr != nil {
		return nil, store.listErr
	}
	return append([]catalog.Raw(nil), store.docs[userID]...), nil
}

func (store *fakeDocuments) Upsert(ctx context.Context, userID, bookID string, doc catalog.Raw) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.calls++
	if store.upsertErr != nil {
		return store.upsertErr
	}

	for i, existing := range store.docs[userID] {
		if existing["id"] == bookID {
			for key, value := range doc {
				existing[key] = value
			}
			store.docs[userID][i] = existing
			return nil
		}
	}
	store.docs[userID] = append([]catalog.Raw{doc}, store.docs[userID]...)
	return nil
}

func (store *fakeDocuments) Delete(ctx context.Context, userID, bookID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.calls++
	if store.deleteErr != nil {
		return store.deleteErr
	}

	kept := store.docs[userID][:0]
	for _, doc := range store.docs[userID] {
		if doc["id"] != bookID {
			kept = append(kept, doc)
		}
	}
	store.docs[userID] = kept
	return nil
}

// failingBlobs is a [favorites.BlobStore] whose every call fails.
type failingBlobs struct{}

func (failingBlobs) Load(ctx context.Context, key string) ([]byte, error) {
	return nil, errStorage
}

func (failingBlobs) Update(ctx context.Context, key string, mutate func([]byte) ([]byte, error)) error {
	return errStorage
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(blobs favorites.BlobStore, docs favorites.DocumentStore) *favorites.Service {
	return favorites.NewService(blobs, docs, discardLogger(), metrics.New())
}

func volume(id, title string) catalog.Raw {
	return catalog.Raw{"id": id, "volumeInfo": map[string]any{"title": title}}
}

func ids(books []catalog.Book) []string {
	out := make([]string, 0, len(books))
	for _, book := range books {
		out = append(out, book.ID)
	}
	return out
}

/*
TestService_AddListRemove walks one book through both backends.
*/
func TestService_AddListRemove(t *testing.T) {
	tests := []struct {
		name  string
		owner favorites.Owner
	}{
		{"guest", guest},
		{"cloud", user},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			service := newTestService(favorites.NewMemoryBlobStore(), newFakeDocuments())

			books, err := service.Add(ctx, tt.owner, volume("b1", "Dune"))
			require.NoError(t, err)
			assert.Equal(t, []string{"b1"}, ids(books))
			assert.Equal(t, "Dune", books[0].Title)

			assert.True(t, service.Contains(ctx, tt.owner, "b1"))
			assert.Equal(t, []string{"b1"}, ids(service.List(ctx, tt.owner)))

			books, err = service.Remove(ctx, tt.owner, "b1")
			require.NoError(t, err)
			assert.Empty(t, books)
			assert.False(t, service.Contains(ctx, tt.owner, "b1"))
		})
	}
}

/*
TestService_Add_Idempotent verifies a second add of the same id changes nothing.
*/
func TestService_Add_Idempotent(t *testing.T) {
	for _, owner := range []favorites.Owner{guest, user} {
		ctx := context.Background()
		service := newTestService(favorites.NewMemoryBlobStore(), newFakeDocuments())

		_, err := service.Add(ctx, owner, volume("b1", "Dune"))
		require.NoError(t, err)
		books, err := service.Add(ctx, owner, volume("b1", "Dune"))
		require.NoError(t, err)

		assert.Equal(t, []string{"b1"}, ids(books))
	}
}

/*
TestService_Ordering checks guest insertion order and cloud newest-first order.
*/
func TestService_Ordering(t *testing.T) {
	ctx := context.Background()
	service := newTestService(favorites.NewMemoryBlobStore(), newFakeDocuments())

	for _, id := range []string{"b1", "b2", "b3"} {
		_, err := service.Add(ctx, guest, volume(id, id))
		require.NoError(t, err)
		_, err = service.Add(ctx, user, volume(id, id))
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"b1", "b2", "b3"}, ids(service.List(ctx, guest)))
	assert.Equal(t, []string{"b3", "b2", "b1"}, ids(service.List(ctx, user)))
}

/*
TestService_Add_InvalidRecord rejects records without an id before any I/O.
*/
func TestService_Add_InvalidRecord(t *testing.T) {
	docs := newFakeDocuments()
	service := newTestService(failingBlobs{}, docs)

	for _, owner := range []favorites.Owner{guest, user} {
		_, err := service.Add(context.Background(), owner, catalog.Raw{"volumeInfo": map[string]any{"title": "No id"}})
		assert.ErrorIs(t, err, favorites.ErrInvalidRecord)
	}
	assert.Zero(t, docs.calls)
}

/*
TestService_Add_NumericID accepts a record whose id is a JSON number.
*/
func TestService_Add_NumericID(t *testing.T) {
	service := newTestService(favorites.NewMemoryBlobStore(), newFakeDocuments())

	books, err := service.Add(context.Background(), guest, catalog.Raw{"id": float64(123), "title": "Numbered"})
	require.NoError(t, err)
	assert.Equal(t, []string{"123"}, ids(books))
}

/*
TestService_UnknownOwner covers calls with neither a user nor a device.
*/
func TestService_UnknownOwner(t *testing.T) {
	service := newTestService(favorites.NewMemoryBlobStore(), newFakeDocuments())
	ctx := context.Background()

	assert.Empty(t, service.List(ctx, favorites.Owner{}))

	_, err := service.Add(ctx, favorites.Owner{}, volume("b1", "Dune"))
	assert.ErrorIs(t, err, favorites.ErrNoOwner)

	_, err = service.Remove(ctx, favorites.Owner{}, "b1")
	assert.ErrorIs(t, err, favorites.ErrNoOwner)
}

/*
TestService_Remove_NotMember leaves the list untouched.
*/
func TestService_Remove_NotMember(t *testing.T) {
	for _, owner := range []favorites.Owner{guest, user} {
		ctx := context.Background()
		service := newTestService(favorites.NewMemoryBlobStore(), newFakeDocuments())

		_, err := service.Add(ctx, owner, volume("b1", "Dune"))
		require.NoError(t, err)

		books, err := service.Remove(ctx, owner, "missing")
		require.NoError(t, err)
		assert.Equal(t, []string{"b1"}, ids(books))
	}
}

/*
TestService_GuestFailures verifies reads degrade and writes fail loudly.
*/
func TestService_GuestFailures(t *testing.T) {
	ctx := context.Background()
	service := newTestService(failingBlobs{}, newFakeDocuments())

	assert.Empty(t, service.List(ctx, guest))

	_, err := service.Add(ctx, guest, volume("b1", "Dune"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errStorage)
	assert.Equal(t, "STORAGE_UNAVAILABLE", apperr.As(err).Code)

	_, err = service.Remove(ctx, guest, "b1")
	assert.ErrorIs(t, err, errStorage)
}

/*
TestService_CloudFailures covers the signed-in error policy.
*/
func TestService_CloudFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("upsert_fails", func(t *testing.T) {
		docs := newFakeDocuments()
		docs.upsertErr = errStorage
		service := newTestService(favorites.NewMemoryBlobStore(), docs)

		_, err := service.Add(ctx, user, volume("b1", "Dune"))
		assert.ErrorIs(t, err, errStorage)
	})

	t.Run("reread_fails_after_write", func(t *testing.T) {
		docs := newFakeDocuments()
		docs.listErr = errStorage
		service := newTestService(favorites.NewMemoryBlobStore(), docs)

		books, err := service.Add(ctx, user, volume("b1", "Dune"))
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("delete_fails_silently", func(t *testing.T) {
		docs := newFakeDocuments()
		service := newTestService(favorites.NewMemoryBlobStore(), docs)
		_, err := service.Add(ctx, user, volume("b1", "Dune"))
		require.NoError(t, err)

		docs.deleteErr = errStorage
		books, err := service.Remove(ctx, user, "b1")
		require.NoError(t, err)
		assert.Equal(t, []string{"b1"}, ids(books))
	})
}

/*
TestService_CorruptBlob reads as empty and is replaced by the next add.
*/
func TestService_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	blobs := favorites.NewMemoryBlobStore()
	key := constants.RedisPrefixGuestFavorites + guest.DeviceID

	require.NoError(t, blobs.Update(ctx, key, func([]byte) ([]byte, error) {
		return []byte("{not json"), nil
	}))

	service := newTestService(blobs, newFakeDocuments())
	assert.Empty(t, service.List(ctx, guest))

	books, err := service.Add(ctx, guest, volume("b1", "Dune"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, ids(books))
}

/*
TestService_IdentitySwitch verifies the backend follows the owner on every call.
*/
func TestService_IdentitySwitch(t *testing.T) {
	ctx := context.Background()
	service := newTestService(favorites.NewMemoryBlobStore(), newFakeDocuments())

	_, err := service.Add(ctx, guest, volume("g1", "Guest book"))
	require.NoError(t, err)

	signedIn := favorites.Owner{UserID: "user-1", DeviceID: guest.DeviceID}
	assert.Empty(t, service.List(ctx, signedIn))

	_, err = service.Add(ctx, signedIn, volume("u1", "User book"))
	require.NoError(t, err)

	assert.Equal(t, []string{"g1"}, ids(service.List(ctx, guest)))
	assert.Equal(t, []string{"u1"}, ids(service.List(ctx, signedIn)))
}

// racingBlobs runs one interleaved write inside the first mutate call.
type racingBlobs struct {
	*favorites.MemoryBlobStore
	fired     atomic.Bool
	interject func()
}

func (store *racingBlobs) Update(ctx context.Context, key string, mutate func([]byte) ([]byte, error)) error {
	return store.MemoryBlobStore.Update(ctx, key, func(current []byte) ([]byte, error) {
		if store.fired.CompareAndSwap(false, true) {
			store.interject()
		}
		return mutate(current)
	})
}

/*
TestService_GuestAdd_NoLostUpdate interleaves two adds on the same device.

The second add commits while the first is between its read and its write;
both books must survive.
*/
func TestService_GuestAdd_NoLostUpdate(t *testing.T) {
	ctx := context.Background()
	blobs := &racingBlobs{MemoryBlobStore: favorites.NewMemoryBlobStore()}
	service := newTestService(blobs, newFakeDocuments())

	blobs.interject = func() {
		_, err := service.Add(ctx, guest, volume("b2", "Second"))
		require.NoError(t, err)
	}

	books, err := service.Add(ctx, guest, volume("b1", "First"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"b1", "b2"}, ids(books))
	assert.ElementsMatch(t, []string{"b1", "b2"}, ids(service.List(ctx, guest)))
}

/*
TestService_GuestAdd_Concurrent fires many adds at one device at once.
*/
func TestService_GuestAdd_Concurrent(t *testing.T) {
	ctx := context.Background()
	service := newTestService(favorites.NewMemoryBlobStore(), newFakeDocuments())

	var wg sync.WaitGroup
	for _, id := range []string{"b1", "b2", "b3", "b4"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _ = service.Add(ctx, guest, volume(id, id))
		}(id)
	}
	wg.Wait()

	assert.ElementsMatch(t, []string{"b1", "b2", "b3", "b4"}, ids(service.List(ctx, guest)))
}
