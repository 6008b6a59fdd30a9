// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/pkg/fold"
	"github.com/taibuivan/bookshelf/pkg/slice"
)

// CategoryOther is the catch-all shelf for books matching no named category.
const CategoryOther = "other"

// Category is one browsable shelf on the home screen.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Query string `json:"query"`
}

var categories = []Category{
	{ID: "fiction", Name: "Fiction", Query: "subject:fiction"},
	{ID: "science", Name: "Science", Query: "subject:science"},
	{ID: "biography", Name: "Biography", Query: "subject:biography"},
	{ID: "history", Name: "History", Query: "subject:history"},
	{ID: "fantasy", Name: "Fantasy", Query: "subject:fantasy"},
	{ID: "romance", Name: "Romance", Query: "subject:romance"},
	{ID: "mystery", Name: "Mystery", Query: "subject:mystery"},
	{ID: "technology", Name: "Technology", Query: "subject:technology"},
	{ID: "business", Name: "Business", Query: "subject:business"},
	{ID: CategoryOther, Name: "Other", Query: constants.GenericQuery},
}

// Categories returns the fixed shelf list in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// LookupCategory finds a shelf by id.
func LookupCategory(id string) (Category, bool) {
	for _, category := range categories {
		if category.ID == id {
			return category, true
		}
	}
	return Category{}, false
}

// CategoryBooks returns the books of a shelf. The boolean is false for an
// unknown shelf, in which case no request is made.
//
// The "other" shelf runs the generic query and keeps only books whose
// categories mention none of the named shelves.
func (service *Service) CategoryBooks(ctx context.Context, id string) (Result[[]Book], bool) {
	category, ok := LookupCategory(id)
	if !ok {
		return Result[[]Book]{Value: []Book{}}, false
	}

	result := service.ByCategory(ctx, category.Query)
	if category.ID != CategoryOther {
		return result, true
	}

	uncategorized := slice.Filter(result.Value, func(book Book) bool {
		return !matchesNamedCategory(book)
	})
	result.Value = slice.Take(uncategorized, constants.ListPageSize)
	return result, true
}

func matchesNamedCategory(book Book) bool {
	for _, subject := range book.Categories {
		for _, category := range categories {
			if category.ID == CategoryOther {
				continue
			}
			if fold.Contains(subject, category.Name) {
				return true
			}
		}
	}
	return false
}
