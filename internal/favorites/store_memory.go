// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"context"
	"sync"
)

// MemoryBlobStore is a process-local [BlobStore] for development without Redis.
//
// It follows the same optimistic protocol as [RedisBlobStore]: every key
// carries a version and a write only commits against the version it read.
// The lock is never held while mutate runs.
type MemoryBlobStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   []byte
	version uint64
}

// NewMemoryBlobStore creates an empty in-memory [BlobStore].
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{entries: make(map[string]memoryEntry)}
}

// Load returns a copy of the value under key, or nil.
func (store *MemoryBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.entries[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), entry.value...), nil
}

// Update applies mutate with compare-and-swap on the key version.
func (store *MemoryBlobStore) Update(ctx context.Context, key string, mutate func(current []byte) ([]byte, error)) error {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		store.mu.Lock()
		snapshot := store.entries[key]
		store.mu.Unlock()

		var current []byte
		if snapshot.version > 0 {
			current = append([]byte(nil), snapshot.value...)
		}

		next, err := mutate(current)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}

		store.mu.Lock()
		if store.entries[key].version != snapshot.version {
			store.mu.Unlock()
			continue
		}
		store.entries[key] = memoryEntry{value: append([]byte(nil), next...), version: snapshot.version + 1}
		store.mu.Unlock()
		return nil
	}

	return ErrWriteConflict
}
