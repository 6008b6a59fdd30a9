// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"strings"

	"github.com/taibuivan/bookshelf/internal/catalog"
	"github.com/taibuivan/bookshelf/pkg/fold"
	"github.com/taibuivan/bookshelf/pkg/slice"
)

// Filter keeps the books whose title or authors contain query.
//
// Matching ignores case and diacritics. A blank query keeps everything.
func Filter(books []catalog.Book, query string) []catalog.Book {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]catalog.Book{}, books...)
	}

	return slice.Filter(books, func(book catalog.Book) bool {
		return fold.Contains(book.Title, query) ||
			fold.Contains(strings.Join(book.Authors, " "), query)
	})
}
