// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/catalog"
	"github.com/taibuivan/bookshelf/pkg/pointer"
)

func fullVolume() catalog.Raw {
	return catalog.Raw{
		"id": "zyTCAlFPjgYC",
		"volumeInfo": map[string]any{
			"title":               "The Google Story",
			"authors":             []any{"David A. Vise", "Mark Malseed"},
			"description":         "<p>Here is the story&nbsp;behind <b>Google</b>.</p>",
			"publishedDate":       "2005-11-15",
			"language":            "en",
			"pageCount":           float64(207),
			"categories":          []any{"Browsers (Computer programs)"},
			"imageLinks":          map[string]any{"smallThumbnail": "http://img/s", "thumbnail": "http://img/t"},
			"previewLink":         "http://preview",
			"infoLink":            "http://info",
			"canonicalVolumeLink": "http://canonical",
		},
		"accessInfo": map[string]any{
			"webReaderLink": "http://reader",
		},
	}
}

/*
TestNormalize_FullVolume maps every consumed field of a remote volume.
*/
func TestNormalize_FullVolume(t *testing.T) {
	book := catalog.Normalize(fullVolume())

	assert.Equal(t, "zyTCAlFPjgYC", book.ID)
	assert.Equal(t, "The Google Story", book.Title)
	assert.Equal(t, []string{"David A. Vise", "Mark Malseed"}, book.Authors)
	assert.Equal(t, "Here is the story behind Google.", book.Description)
	assert.Equal(t, "2005-11-15", book.PublishedDate)
	assert.Equal(t, "EN", book.Language)
	require.NotNil(t, book.PageCount)
	assert.Equal(t, 207, *book.PageCount)
	assert.Equal(t, []string{"Browsers (Computer programs)"}, book.Categories)
	assert.Equal(t, pointer.To("http://img/t"), book.Thumbnail)
	assert.Equal(t, pointer.To("http://reader"), book.ReaderLink)
	assert.Equal(t, pointer.To("http://preview"), book.PreviewLink)
	assert.Len(t, book.ImageLinks, 2)
}

/*
TestNormalize_Total verifies that missing or mistyped input degrades to defaults.
*/
func TestNormalize_Total(t *testing.T) {
	tests := []struct {
		name string
		raw  catalog.Raw
	}{
		{"nil", nil},
		{"empty", catalog.Raw{}},
		{"wrong_types", catalog.Raw{
			"id":         4.5,
			"volumeInfo": "not an object",
			"accessInfo": []any{1, 2},
			"title":      false,
			"authors":    map[string]any{"a": "b"},
			"pageCount":  "many",
			"imageLinks": "nope",
		}},
		{"empty_nested", catalog.Raw{"volumeInfo": map[string]any{}, "accessInfo": map[string]any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var book catalog.Book
			require.NotPanics(t, func() { book = catalog.Normalize(tt.raw) })

			assert.Equal(t, "", book.ID)
			assert.Equal(t, "Untitled", book.Title)
			assert.NotNil(t, book.Authors)
			assert.Empty(t, book.Authors)
			assert.NotNil(t, book.Categories)
			assert.Equal(t, "", book.Description)
			assert.Equal(t, "", book.Language)
			assert.Nil(t, book.PageCount)
			assert.Nil(t, book.Thumbnail)
			assert.Nil(t, book.ReaderLink)
		})
	}
}

/*
TestNormalize_NumericID keeps whole-number ids as their decimal text.
*/
func TestNormalize_NumericID(t *testing.T) {
	tests := []struct {
		name string
		id   any
		want string
	}{
		{"string", "abc", "abc"},
		{"json_number", float64(123), "123"},
		{"int", 7, "7"},
		{"fraction", 1.5, ""},
		{"bool", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := catalog.Normalize(catalog.Raw{"id": tt.id})
			assert.Equal(t, tt.want, book.ID)
			assert.Equal(t, book, catalog.Normalize(book.Raw()))
		})
	}
}

/*
TestNormalize_Idempotent checks Normalize(Normalize(x)) == Normalize(x) over sampled shapes.
*/
func TestNormalize_Idempotent(t *testing.T) {
	samples := map[string]catalog.Raw{
		"full_volume": fullVolume(),
		"empty":       {},
		"flat_book": {
			"id": "b1", "title": "T", "authors": "Solo Author", "pageCount": "320",
			"thumbnail": "http://flat/thumb", "readerLink": "http://flat/reader",
		},
		"html_edge": {
			"volumeInfo": map[string]any{"description": "  <<b>b>&nbsp&amp; <i>x</i>&nbsp;  "},
		},
		"odd_links": {
			"imageLinks": map[string]any{"custom": "http://x", "small": ""},
		},
	}

	for name, raw := range samples {
		t.Run(name, func(t *testing.T) {
			once := catalog.Normalize(raw)
			twice := catalog.Normalize(once.Raw())
			assert.Equal(t, once, twice)
		})
	}
}

/*
TestNormalize_ThumbnailPreference covers each rung alone and in combination.
*/
func TestNormalize_ThumbnailPreference(t *testing.T) {
	tests := []struct {
		name  string
		links map[string]any
		flat  string
		want  *string
	}{
		{"extra_large_only", map[string]any{"extraLarge": "xl"}, "", pointer.To("xl")},
		{"large_only", map[string]any{"large": "l"}, "", pointer.To("l")},
		{"medium_only", map[string]any{"medium": "m"}, "", pointer.To("m")},
		{"small_only", map[string]any{"small": "s"}, "", pointer.To("s")},
		{"thumbnail_only", map[string]any{"thumbnail": "t"}, "", pointer.To("t")},
		{"small_thumbnail_only", map[string]any{"smallThumbnail": "st"}, "", pointer.To("st")},
		{"all", map[string]any{"extraLarge": "xl", "large": "l", "medium": "m", "small": "s", "thumbnail": "t", "smallThumbnail": "st"}, "", pointer.To("xl")},
		{"medium_beats_thumbnail", map[string]any{"thumbnail": "t", "medium": "m"}, "", pointer.To("m")},
		{"empty_variant_skipped", map[string]any{"large": "", "small": "s"}, "", pointer.To("s")},
		{"links_beat_flat", map[string]any{"smallThumbnail": "st"}, "flat", pointer.To("st")},
		{"flat_fallback", nil, "flat", pointer.To("flat")},
		{"none", nil, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := catalog.Raw{}
			if tt.links != nil {
				raw["volumeInfo"] = map[string]any{"imageLinks": tt.links}
			}
			if tt.flat != "" {
				raw["thumbnail"] = tt.flat
			}
			assert.Equal(t, tt.want, catalog.Normalize(raw).Thumbnail)
		})
	}
}

/*
TestNormalize_ReaderLinkPreference covers web reader, preview, info and canonical links.
*/
func TestNormalize_ReaderLinkPreference(t *testing.T) {
	tests := []struct {
		name   string
		access map[string]any
		volume map[string]any
		want   *string
	}{
		{"web_reader_only", map[string]any{"webReaderLink": "w"}, nil, pointer.To("w")},
		{"preview_only", nil, map[string]any{"previewLink": "p"}, pointer.To("p")},
		{"info_only", nil, map[string]any{"infoLink": "i"}, pointer.To("i")},
		{"canonical_only", nil, map[string]any{"canonicalVolumeLink": "c"}, pointer.To("c")},
		{"all", map[string]any{"webReaderLink": "w"}, map[string]any{"previewLink": "p", "infoLink": "i", "canonicalVolumeLink": "c"}, pointer.To("w")},
		{"preview_beats_info", nil, map[string]any{"infoLink": "i", "previewLink": "p"}, pointer.To("p")},
		{"info_beats_canonical", nil, map[string]any{"canonicalVolumeLink": "c", "infoLink": "i"}, pointer.To("i")},
		{"none", nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := catalog.Raw{}
			if tt.access != nil {
				raw["accessInfo"] = tt.access
			}
			if tt.volume != nil {
				raw["volumeInfo"] = tt.volume
			}
			assert.Equal(t, tt.want, catalog.Normalize(raw).ReaderLink)
		})
	}
}

/*
TestNormalize_NestedWinsOverFlat ensures remote values take precedence over flattened ones.
*/
func TestNormalize_NestedWinsOverFlat(t *testing.T) {
	book := catalog.Normalize(catalog.Raw{
		"title":      "Flat",
		"language":   "fr",
		"volumeInfo": map[string]any{"title": "Nested"},
	})

	assert.Equal(t, "Nested", book.Title)
	assert.Equal(t, "FR", book.Language)
}

/*
TestStripHTML documents the lossy tag filter.
*/
func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Plain text", "Plain text"},
		{"tags", "<p>One <br/>two</p>", "One two"},
		{"nbsp_with_semicolon", "a&nbsp;b", "a b"},
		{"nbsp_without_semicolon", "a&nbspb", "a b"},
		{"other_entities_kept", "Tom &amp; Jerry", "Tom &amp; Jerry"},
		{"trimmed", "  <i>x</i>  ", "x"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.StripHTML(tt.in))
		})
	}
}

/*
TestMerge verifies the detail overlay and the id fallback chain.
*/
func TestMerge(t *testing.T) {
	base := catalog.Normalize(catalog.Raw{"id": "x", "title": "Old", "authors": []any{"A"}})
	detail := catalog.Normalize(catalog.Raw{"volumeInfo": map[string]any{"title": "New", "description": "D"}})

	merged := catalog.Merge(&base, detail, "input")

	assert.Equal(t, "x", merged.ID)
	assert.Equal(t, "New", merged.Title)
	assert.Equal(t, "D", merged.Description)
	assert.Equal(t, []string{"A"}, merged.Authors, "fields missing from detail are kept from base")

	t.Run("detail_id_wins", func(t *testing.T) {
		withID := catalog.Normalize(catalog.Raw{"id": "remote"})
		assert.Equal(t, "remote", catalog.Merge(&base, withID, "input").ID)
	})

	t.Run("input_id_fallback", func(t *testing.T) {
		assert.Equal(t, "input", catalog.Merge(nil, detail, "input").ID)
	})

	t.Run("untitled_detail_keeps_base_title", func(t *testing.T) {
		assert.Equal(t, "Old", catalog.Merge(&base, catalog.Normalize(nil), "x").Title)
	})
}

/*
TestDetailFields keeps the remote field selection in sync with what Normalize reads.
*/
func TestDetailFields(t *testing.T) {
	fields := catalog.DetailFields()

	for _, name := range []string{
		"id", "title", "authors", "description", "publishedDate", "language", "pageCount",
		"categories", "imageLinks", "previewLink", "infoLink", "canonicalVolumeLink", "webReaderLink",
	} {
		assert.Contains(t, fields, name)
	}

	assert.Equal(t, "items("+fields+")", catalog.ListFields())
}
