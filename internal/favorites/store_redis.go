// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBlobStore implements [BlobStore] on Redis with WATCH/MULTI optimistic locking.
//
// Values carry no TTL; a guest blob lives as long as the device keeps its key.
type RedisBlobStore struct {
	client *redis.Client
}

// NewRedisBlobStore creates a new Redis-backed [BlobStore].
func NewRedisBlobStore(client *redis.Client) *RedisBlobStore {
	return &RedisBlobStore{client: client}
}

// Load fetches the raw blob, returning nil for an absent key.
func (store *RedisBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := store.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_favorites_load_failed: %w", err)
	}
	return value, nil
}

// Update runs mutate inside a WATCH on key and commits with MULTI/EXEC.
// A concurrent write aborts EXEC with [redis.TxFailedErr] and the loop retries.
func (store *RedisBlobStore) Update(ctx context.Context, key string, mutate func(current []byte) ([]byte, error)) error {
	transaction := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("redis_favorites_watch_get_failed: %w", err)
		}

		next, err := mutate(current)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := store.client.Watch(ctx, transaction, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("redis_favorites_update_failed: %w", err)
		}
		return nil
	}

	return ErrWriteConflict
}
