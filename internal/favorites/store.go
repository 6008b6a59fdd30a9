// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"context"

	"github.com/taibuivan/bookshelf/internal/catalog"
)

// # Guest Storage

// BlobStore holds one opaque value per key, read and replaced as a whole.
type BlobStore interface {

	/*
		Load returns the value stored under key.

		Returns:
		  - []byte: nil when the key is absent
		  - error: connectivity errors only
	*/
	Load(ctx context.Context, key string) ([]byte, error)

	/*
		Update replaces the value under key with mutate(current).

		Description: current is nil when the key is absent. Returning a nil
		slice from mutate skips the write. The write only commits if the key
		did not change since it was read; otherwise mutate is called again on
		a fresh snapshot, so mutate must be free of side effects beyond the
		value it returns.

		Returns:
		  - error: the error returned by mutate, connectivity errors, or
		    [ErrWriteConflict] when every attempt lost a race
	*/
	Update(ctx context.Context, key string, mutate func(current []byte) ([]byte, error)) error
}

// # Signed-in Storage

// DocumentStore keeps one JSON document per (user, book) pair.
type DocumentStore interface {

	/*
		List returns the user's documents, most recently created first.
	*/
	List(ctx context.Context, userID string) ([]catalog.Raw, error)

	/*
		Upsert creates the document or merges doc's keys into the existing one.

		Description: The creation time is set on first insert and kept on
		later merges.
	*/
	Upsert(ctx context.Context, userID, bookID string, doc catalog.Raw) error

	/*
		Delete removes the document. Deleting an absent document is not an error.
	*/
	Delete(ctx context.Context, userID, bookID string) error
}
