// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package fold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookshelf/pkg/fold"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"accents", "García Márquez", "garcia marquez"},
		{"sharp_s", "Straße", "strasse"},
		{"whitespace", "  The   Hobbit ", "the hobbit"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fold.Fold(tt.input))
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, fold.Contains("Cien años de soledad", "ANOS"))
	assert.True(t, fold.Contains("anything", ""))
	assert.False(t, fold.Contains("Dune", "hobbit"))
}
