// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/jmcomic-api/pkg/slice"
)

/*
TestMap transforms every element and never returns nil.
*/
func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))

	empty := slice.Map[int, string](nil, strconv.Itoa)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

/*
TestFilterUnique keeps order while dropping rejected and repeated values.
*/
func TestFilterUnique(t *testing.T) {
	values := []string{"b", "", "a", "b", "", "c"}

	nonEmpty := slice.Filter(values, func(v string) bool { return v != "" })
	assert.Equal(t, []string{"b", "a", "b", "c"}, nonEmpty)
	assert.Equal(t, []string{"b", "a", "c"}, slice.Unique(nonEmpty))
}
