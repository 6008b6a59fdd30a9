// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"regexp"
	"strings"

	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/pkg/convert"
	"github.com/taibuivan/bookshelf/pkg/pointer"
)

// # Record Keys

const (
	keyID         = "id"
	keyVolumeInfo = "volumeInfo"
	keyAccessInfo = "accessInfo"

	keyTitle               = "title"
	keyAuthors             = "authors"
	keyDescription         = "description"
	keyPublishedDate       = "publishedDate"
	keyLanguage            = "language"
	keyPageCount           = "pageCount"
	keyCategories          = "categories"
	keyImageLinks          = "imageLinks"
	keyThumbnail           = "thumbnail"
	keyWebReaderLink       = "webReaderLink"
	keyPreviewLink         = "previewLink"
	keyInfoLink            = "infoLink"
	keyCanonicalVolumeLink = "canonicalVolumeLink"
	keyReaderLink          = "readerLink"
)

const untitled = constants.UntitledPlaceholder

// volumeInfoKeys lists every volumeInfo sub-field Normalize reads. The remote
// field selection is built from it, so the two cannot drift apart.
var volumeInfoKeys = []string{
	keyTitle, keyAuthors, keyDescription, keyPublishedDate, keyLanguage,
	keyPageCount, keyCategories, keyImageLinks, keyPreviewLink, keyInfoLink,
	keyCanonicalVolumeLink,
}

// accessInfoKeys lists every accessInfo sub-field Normalize reads.
var accessInfoKeys = []string{keyWebReaderLink}

// thumbnailOrder is the image variant preference, largest first.
var thumbnailOrder = []string{"extraLarge", "large", "medium", "small", "thumbnail", "smallThumbnail"}

var (
	htmlTag = regexp.MustCompile(`<[^>]*>`)
	nbsp    = regexp.MustCompile(`&nbsp;?`)
)

// # Normalization

/*
Normalize maps any raw record into a fully populated [Book].

It accepts both the remote shape (nested volumeInfo and accessInfo objects)
and an already flattened book. When a value is present in both places the
nested one wins.

# Guarantees

  - Total: it never fails. Missing or mistyped values fall back to defaults.
  - Idempotent: Normalize(Normalize(x).Raw()) == Normalize(x).
*/
func Normalize(raw Raw) Book {
	volume := object(raw[keyVolumeInfo])
	access := object(raw[keyAccessInfo])

	title := firstString(volume[keyTitle], raw[keyTitle])
	if title == "" {
		title = untitled
	}

	imageLinks := stringMap(volume[keyImageLinks])
	if imageLinks == nil {
		imageLinks = stringMap(raw[keyImageLinks])
	}

	webReader := pointer.NonEmpty(firstString(access[keyWebReaderLink], raw[keyWebReaderLink]))
	preview := pointer.NonEmpty(firstString(volume[keyPreviewLink], raw[keyPreviewLink]))
	info := pointer.NonEmpty(firstString(volume[keyInfoLink], raw[keyInfoLink]))
	canonical := pointer.NonEmpty(firstString(volume[keyCanonicalVolumeLink], raw[keyCanonicalVolumeLink]))

	return Book{
		ID:            convert.AnyToKey(raw[keyID]),
		Title:         title,
		Authors:       firstStrings(volume[keyAuthors], raw[keyAuthors]),
		Description:   StripHTML(firstString(volume[keyDescription], raw[keyDescription])),
		PublishedDate: firstString(volume[keyPublishedDate], raw[keyPublishedDate]),
		Language:      strings.ToUpper(firstString(volume[keyLanguage], raw[keyLanguage])),
		PageCount:     pageCount(volume[keyPageCount], raw[keyPageCount]),
		Categories:    firstStrings(volume[keyCategories], raw[keyCategories]),

		Thumbnail:  pointer.Coalesce(pickThumbnail(imageLinks), pointer.NonEmpty(convert.AnyToString(raw[keyThumbnail]))),
		ImageLinks: imageLinks,

		WebReaderLink:       webReader,
		PreviewLink:         preview,
		InfoLink:            info,
		CanonicalVolumeLink: canonical,
		ReaderLink: pointer.Coalesce(
			webReader, preview, info, canonical,
			pointer.NonEmpty(convert.AnyToString(raw[keyReaderLink])),
		),
	}
}

// StripHTML removes markup from a description.
//
// This is deliberately a lossy tag filter, not an HTML parser: tags are
// dropped, non-breaking spaces become plain spaces and other entities are
// left as they are.
func StripHTML(html string) string {
	text := htmlTag.ReplaceAllString(html, "")
	text = nbsp.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// # Field Helpers

func pickThumbnail(links map[string]string) *string {
	for _, variant := range thumbnailOrder {
		if link := links[variant]; link != "" {
			return &link
		}
	}
	return nil
}

func pageCount(candidates ...any) *int {
	for _, candidate := range candidates {
		if n, ok := convert.AnyToInt(candidate); ok {
			return &n
		}
	}
	return nil
}

func object(value any) map[string]any {
	if typed, ok := value.(map[string]any); ok {
		return typed
	}
	return nil
}

func firstString(candidates ...any) string {
	for _, candidate := range candidates {
		if s := convert.AnyToString(candidate); s != "" {
			return s
		}
	}
	return ""
}

// firstStrings returns the first candidate that yields at least one string.
// A lone string is treated as a one-element list. Never nil.
func firstStrings(candidates ...any) []string {
	for _, candidate := range candidates {
		if values := stringList(candidate); len(values) > 0 {
			return values
		}
	}
	return []string{}
}

func stringList(value any) []string {
	switch typed := value.(type) {
	case string:
		if typed == "" {
			return nil
		}
		return []string{typed}
	case []string:
		out := make([]string, 0, len(typed))
		for _, s := range typed {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(typed))
		for _, element := range typed {
			if s := convert.AnyToString(element); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// stringMap keeps the non-empty string entries of an object. Nil when none.
func stringMap(value any) map[string]string {
	var out map[string]string
	add := func(key, link string) {
		if link == "" {
			return
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[key] = link
	}

	switch typed := value.(type) {
	case map[string]any:
		for key, element := range typed {
			add(key, convert.AnyToString(element))
		}
	case map[string]string:
		for key, link := range typed {
			add(key, link)
		}
	}

	return out
}
