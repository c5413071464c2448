// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/locallibrary/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, slice.Map([]string{"a", "b"}, strings.ToUpper))
	assert.Nil(t, slice.Map[string, string](nil, strings.ToUpper))
}

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4}, even))
	assert.Equal(t, []int{}, slice.Filter([]int{1, 3}, even))
	assert.Nil(t, slice.Filter(nil, even))
}

func TestIndexBy(t *testing.T) {
	index := slice.IndexBy([]string{"apple", "avocado", "banana"}, func(s string) byte { return s[0] })

	assert.Len(t, index, 2)
	assert.Equal(t, "avocado", index['a'])
	assert.Equal(t, "banana", index['b'])
}
