package schema

// LibraryFavoriteTable represents the 'library.favorite' table
type LibraryFavoriteTable struct {
	Table     string
	UserID    string
	BookID    string
	Doc       string
	CreatedAt string
	UpdatedAt string
}

// LibraryFavorite is the schema definition for library.favorite
var LibraryFavorite = LibraryFavoriteTable{
	Table:     "library.favorite",
	UserID:    "userid",
	BookID:    "bookid",
	Doc:       "doc",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns lists every column in insert order.
func (t LibraryFavoriteTable) Columns() []string {
	return []string{
		t.UserID, t.BookID, t.Doc, t.CreatedAt, t.UpdatedAt,
	}
}
