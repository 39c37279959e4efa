// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jmcomic-api/pkg/convert"
)

/*
TestToIntD falls back on blank and malformed input.
*/
func TestToIntD(t *testing.T) {
	assert.Equal(t, 12, convert.ToIntD(" 12 ", 0))
	assert.Equal(t, 7, convert.ToIntD("", 7))
	assert.Equal(t, 7, convert.ToIntD("n/a", 7))
}

/*
TestToIntPtr returns nil for anything that is not a number.
*/
func TestToIntPtr(t *testing.T) {
	value := convert.ToIntPtr("3")
	require.NotNil(t, value)
	assert.Equal(t, 3, *value)

	assert.Nil(t, convert.ToIntPtr(""))
	assert.Nil(t, convert.ToIntPtr("three"))
}
