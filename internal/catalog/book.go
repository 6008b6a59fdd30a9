// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog turns a third-party volume-search service into a stable book shape.

It owns the only outbound network I/O of the bookshelf core and is split into
three layers:

  - Normalize: a pure, total and idempotent mapping from any raw record to [Book].
  - Client: strict HTTP calls that return errors.
  - Service: the best-effort facade the UI consumes. It never fails; a failure
    shows up as an empty (or base) value with the cause attached in [Result].

# Browse Policy

A catalog outage must not break browsing. Read paths therefore degrade
silently for the caller while still logging and counting the failure.
*/
package catalog

// Raw is an arbitrary decoded JSON object: a remote volume, a stored favorite
// or a request body. Nothing about its shape is trusted.
type Raw = map[string]any

// Book is the canonical record every consumer renders.
//
// Optional values are pointers so that "absent" survives a JSON round trip as
// null instead of collapsing into a zero value.
type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	PublishedDate string   `json:"publishedDate"`
	Language      string   `json:"language"`
	PageCount     *int     `json:"pageCount"`
	Categories    []string `json:"categories"`

	Thumbnail  *string           `json:"thumbnail"`
	ImageLinks map[string]string `json:"imageLinks,omitempty"`

	WebReaderLink       *string `json:"webReaderLink"`
	PreviewLink         *string `json:"previewLink"`
	InfoLink            *string `json:"infoLink"`
	CanonicalVolumeLink *string `json:"canonicalVolumeLink"`

	// ReaderLink is the first available of the four links above.
	ReaderLink *string `json:"readerLink"`
}

// Raw flattens the book back into a loosely typed record.
//
// Normalize(book.Raw()) == book for every normalized book, which is what lets
// stored favorites be re-normalized safely after a schema change.
func (book Book) Raw() Raw {
	raw := Raw{
		keyID:            book.ID,
		keyTitle:         book.Title,
		keyAuthors:       append([]string{}, book.Authors...),
		keyDescription:   book.Description,
		keyPublishedDate: book.PublishedDate,
		keyLanguage:      book.Language,
		keyCategories:    append([]string{}, book.Categories...),
	}

	if book.PageCount != nil {
		raw[keyPageCount] = *book.PageCount
	}

	if len(book.ImageLinks) > 0 {
		links := make(map[string]any, len(book.ImageLinks))
		for name, link := range book.ImageLinks {
			links[name] = link
		}
		raw[keyImageLinks] = links
	}

	optional := map[string]*string{
		keyThumbnail:           book.Thumbnail,
		keyWebReaderLink:       book.WebReaderLink,
		keyPreviewLink:         book.PreviewLink,
		keyInfoLink:            book.InfoLink,
		keyCanonicalVolumeLink: book.CanonicalVolumeLink,
		keyReaderLink:          book.ReaderLink,
	}
	for key, value := range optional {
		if value != nil {
			raw[key] = *value
		}
	}

	return raw
}

// Merge completes base with the non-default fields of detail.
//
// The id is taken from detail, then base, then fallbackID. A field detail
// left at its default never erases what base already had. Base is expected to
// be a normalized book.
func Merge(base *Book, detail Book, fallbackID string) Book {
	if base == nil {
		merged := detail
		if merged.ID == "" {
			merged.ID = fallbackID
		}
		return merged
	}

	merged := *base

	switch {
	case detail.ID != "":
		merged.ID = detail.ID
	case merged.ID == "":
		merged.ID = fallbackID
	}

	if detail.Title != "" && detail.Title != untitled {
		merged.Title = detail.Title
	}
	if len(detail.Authors) > 0 {
		merged.Authors = detail.Authors
	}
	if detail.Description != "" {
		merged.Description = detail.Description
	}
	if detail.PublishedDate != "" {
		merged.PublishedDate = detail.PublishedDate
	}
	if detail.Language != "" {
		merged.Language = detail.Language
	}
	if detail.PageCount != nil {
		merged.PageCount = detail.PageCount
	}
	if len(detail.Categories) > 0 {
		merged.Categories = detail.Categories
	}
	if len(detail.ImageLinks) > 0 {
		merged.ImageLinks = detail.ImageLinks
	}
	if detail.Thumbnail != nil {
		merged.Thumbnail = detail.Thumbnail
	}
	if detail.WebReaderLink != nil {
		merged.WebReaderLink = detail.WebReaderLink
	}
	if detail.PreviewLink != nil {
		merged.PreviewLink = detail.PreviewLink
	}
	if detail.InfoLink != nil {
		merged.InfoLink = detail.InfoLink
	}
	if detail.CanonicalVolumeLink != nil {
		merged.CanonicalVolumeLink = detail.CanonicalVolumeLink
	}
	if detail.ReaderLink != nil {
		merged.ReaderLink = detail.ReaderLink
	}

	// Derived fields (thumbnail, readerLink) are recomputed over the merged links.
	return Normalize(merged.Raw())
}
