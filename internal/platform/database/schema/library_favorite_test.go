package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookshelf/internal/platform/database/schema"
)

func TestLibraryFavorite_Columns(t *testing.T) {
	assert.Equal(t,
		[]string{"userid", "bookid", "doc", "createdat", "updatedat"},
		schema.LibraryFavorite.Columns(),
	)
}
