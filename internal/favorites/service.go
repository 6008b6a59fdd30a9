// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/bookshelf/internal/catalog"
	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/ctxutil"
	"github.com/taibuivan/bookshelf/internal/platform/metrics"
	"github.com/taibuivan/bookshelf/pkg/slice"
)

// Service implements list, add and remove over the two backends.
type Service struct {
	blobs     BlobStore
	documents DocumentStore
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewService wires the guest and signed-in backends.
func NewService(blobs BlobStore, documents DocumentStore, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		blobs:     blobs,
		documents: documents,
		logger:    logger,
		metrics:   m,
	}
}

// # Read Path

/*
List returns the owner's favorites.

Description: Guest lists keep insertion order; signed-in lists are newest
first. Every entry is normalized again on the way out, since stored shapes
may predate the current [catalog.Book]. Never fails: any read problem yields
an empty list.
*/
func (service *Service) List(ctx context.Context, owner Owner) []catalog.Book {
	if !owner.known() {
		return []catalog.Book{}
	}

	service.metrics.IncFavoritesOp("list", owner.backend())

	books, err := service.load(ctx, owner)
	if err != nil {
		service.storageFailed(ctx, "list", owner, err)
		return []catalog.Book{}
	}
	return books
}

// Contains reports whether id is in the owner's favorites.
func (service *Service) Contains(ctx context.Context, owner Owner, id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	return containsID(service.List(ctx, owner), id)
}

// # Write Path

/*
Add saves a book and returns the resulting list.

Description: The record is normalized first; a record without an id is
rejected with [ErrInvalidRecord] before any I/O. Adding a book that is
already saved changes nothing and is not an error.

  - Guest: append to the device blob unless present, committed optimistically.
  - Signed in: merge-upsert the document, then re-read the whole list.

Returns:
  - []catalog.Book: the list after the write
  - error: ErrInvalidRecord, ErrNoOwner or a STORAGE_UNAVAILABLE [apperr.AppError]
*/
func (service *Service) Add(ctx context.Context, owner Owner, raw catalog.Raw) ([]catalog.Book, error) {
	book := catalog.Normalize(raw)
	if strings.TrimSpace(book.ID) == "" {
		return nil, ErrInvalidRecord
	}
	if !owner.known() {
		return nil, ErrNoOwner
	}

	service.metrics.IncFavoritesOp("add", owner.backend())

	if owner.IsGuest() {
		return service.addGuest(ctx, owner, book)
	}
	return service.addCloud(ctx, owner, book)
}

/*
Remove deletes a book and returns the resulting list.

Description: Removing a book that is not saved is a no-op. A guest write
failure is returned to the caller; a signed-in delete failure is only
logged and the current list is returned instead.
*/
func (service *Service) Remove(ctx context.Context, owner Owner, id string) ([]catalog.Book, error) {
	if !owner.known() {
		return nil, ErrNoOwner
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return service.List(ctx, owner), nil
	}

	service.metrics.IncFavoritesOp("remove", owner.backend())

	if owner.IsGuest() {
		return service.removeGuest(ctx, owner, id)
	}

	if err := service.documents.Delete(ctx, owner.UserID, id); err != nil {
		service.storageFailed(ctx, "remove", owner, err)
	}
	return service.List(ctx, owner), nil
}

// # Guest Backend

func (service *Service) addGuest(ctx context.Context, owner Owner, book catalog.Book) ([]catalog.Book, error) {
	var result []catalog.Book
	attempts := 0

	err := service.blobs.Update(ctx, owner.guestKey(), func(current []byte) ([]byte, error) {
		attempts++
		books := service.decodeBlob(ctx, current)
		if containsID(books, book.ID) {
			result = books
			return nil, nil
		}

		result = append(books, book)
		return json.Marshal(result)
	})
	service.countConflicts(attempts)

	if err != nil {
		service.storageFailed(ctx, "add", owner, err)
		return nil, apperr.StorageUnavailable(fmt.Errorf("favorites_guest_add_failed: %w", err))
	}
	return result, nil
}

func (service *Service) removeGuest(ctx context.Context, owner Owner, id string) ([]catalog.Book, error) {
	var result []catalog.Book
	attempts := 0

	err := service.blobs.Update(ctx, owner.guestKey(), func(current []byte) ([]byte, error) {
		attempts++
		books := service.decodeBlob(ctx, current)
		result = slice.Filter(books, func(book catalog.Book) bool {
			return book.ID != id
		})
		if len(result) == len(books) {
			return nil, nil
		}
		return json.Marshal(result)
	})
	service.countConflicts(attempts)

	if err != nil {
		service.storageFailed(ctx, "remove", owner, err)
		return nil, apperr.StorageUnavailable(fmt.Errorf("favorites_guest_remove_failed: %w", err))
	}
	return result, nil
}

// decodeBlob parses a guest blob. Absent or corrupt blobs read as empty.
func (service *Service) decodeBlob(ctx context.Context, data []byte) []catalog.Book {
	if len(data) == 0 {
		return []catalog.Book{}
	}

	var entries []any
	if err := json.Unmarshal(data, &entries); err != nil {
		service.logger.WarnContext(ctx, "favorites_blob_corrupt",
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("error", err),
		)
		return []catalog.Book{}
	}

	books := make([]catalog.Book, 0, len(entries))
	for _, entry := range entries {
		if raw, ok := entry.(map[string]any); ok {
			books = append(books, catalog.Normalize(raw))
		}
	}
	return books
}

// # Signed-in Backend

func (service *Service) addCloud(ctx context.Context, owner Owner, book catalog.Book) ([]catalog.Book, error) {
	if err := service.documents.Upsert(ctx, owner.UserID, book.ID, book.Raw()); err != nil {
		service.storageFailed(ctx, "add", owner, err)
		return nil, apperr.StorageUnavailable(fmt.Errorf("favorites_cloud_add_failed: %w", err))
	}

	// The write succeeded; a failed re-read falls under the read policy.
	return service.List(ctx, owner), nil
}

// # Internal Helpers

func (service *Service) load(ctx context.Context, owner Owner) ([]catalog.Book, error) {
	if owner.IsGuest() {
		data, err := service.blobs.Load(ctx, owner.guestKey())
		if err != nil {
			return nil, err
		}
		return service.decodeBlob(ctx, data), nil
	}

	docs, err := service.documents.List(ctx, owner.UserID)
	if err != nil {
		return nil, err
	}
	return slice.Map(docs, catalog.Normalize), nil
}

func (service *Service) countConflicts(attempts int) {
	for i := 1; i < attempts; i++ {
		service.metrics.IncFavoritesConflict()
	}
}

func (service *Service) storageFailed(ctx context.Context, action string, owner Owner, err error) {
	service.metrics.IncFavoritesStorageError(action, owner.backend())
	service.logger.WarnContext(ctx, "favorites_storage_failed",
		slog.String("action", action),
		slog.String("backend", owner.backend()),
		slog.String("request_id", ctxutil.GetRequestID(ctx)),
		slog.Any("error", err),
	)
}

func containsID(books []catalog.Book, id string) bool {
	for _, book := range books {
		if book.ID == id {
			return true
		}
	}
	return false
}
