// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookshelf/pkg/slice"
)

func TestWindow(t *testing.T) {
	input := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []int
	}{
		{"first_page", 0, 2, []int{1, 2}},
		{"last_partial", 4, 2, []int{5}},
		{"past_end", 5, 2, []int{}},
		{"negative_offset", -100, 2, []int{}},
		{"zero_limit", 0, 0, []int{}},
		{"overflowing_limit", 1, math.MaxInt, []int{2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slice.Window(input, tt.offset, tt.limit))
		})
	}
}

func TestFilter_NeverNil(t *testing.T) {
	got := slice.Filter([]int{1, 2}, func(int) bool { return false })
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
