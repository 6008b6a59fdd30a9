// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookshelf/internal/catalog"
	"github.com/taibuivan/bookshelf/internal/platform/database/schema"
	"github.com/taibuivan/bookshelf/internal/platform/dberr"
)

// PostgresDocumentStore implements [DocumentStore] on the library.favorite table.
type PostgresDocumentStore struct {
	pool *pgxpool.Pool
}

// NewPostgresDocumentStore creates a new PostgreSQL implementation of [DocumentStore].
func NewPostgresDocumentStore(pool *pgxpool.Pool) *PostgresDocumentStore {
	return &PostgresDocumentStore{pool: pool}
}

/*
List returns every favorite document of the user.

Description: Ordered by creation time, newest first. Ties (same
transaction timestamp) fall back to the book id so the order is stable.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - []catalog.Raw: stored documents
  - error: connectivity or decoding errors
*/
func (store *PostgresDocumentStore) List(ctx context.Context, userID string) ([]catalog.Raw, error) {
	table := schema.LibraryFavorite
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s ASC`,
		table.Doc, table.Table,
		table.UserID,
		table.CreatedAt, table.BookID,
	)

	rows, err := store.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "favorites_list")
	}
	defer rows.Close()

	docs := make([]catalog.Raw, 0)
	for rows.Next() {
		var doc catalog.Raw
		if err := rows.Scan(&doc); err != nil {
			return nil, dberr.Wrap(err, "favorites_list_scan")
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "favorites_list_rows")
	}

	return docs, nil
}

/*
Upsert inserts the document or merges it into the existing one.

Description: The jsonb concatenation keeps keys the new document does not
carry. createdat is only written on insert, so re-adding a book keeps its
place in the list.

Parameters:
  - ctx: context.Context
  - userID: string
  - bookID: string
  - doc: catalog.Raw

Returns:
  - error: constraint or connectivity errors
*/
func (store *PostgresDocumentStore) Upsert(ctx context.Context, userID, bookID string, doc catalog.Raw) error {
	table := schema.LibraryFavorite
	query := fmt.Sprintf(`
		INSERT INTO %s AS fav (%s)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = fav.%s || EXCLUDED.%s,
		    %s = now()`,
		table.Table, strings.Join(table.Columns(), ", "),
		table.UserID, table.BookID,
		table.Doc, table.Doc, table.Doc,
		table.UpdatedAt,
	)

	if _, err := store.pool.Exec(ctx, query, userID, bookID, doc); err != nil {
		return dberr.Wrap(err, "favorites_upsert")
	}
	return nil
}

/*
Delete removes one favorite document.

Parameters:
  - ctx: context.Context
  - userID: string
  - bookID: string

Returns:
  - error: connectivity errors
*/
func (store *PostgresDocumentStore) Delete(ctx context.Context, userID, bookID string) error {
	table := schema.LibraryFavorite
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		table.Table, table.UserID, table.BookID,
	)

	if _, err := store.pool.Exec(ctx, query, userID, bookID); err != nil {
		return dberr.Wrap(err, "favorites_delete")
	}
	return nil
}
