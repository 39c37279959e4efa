// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/jmcomic-api/pkg/pointer"
)

/*
TestNonZero treats the zero value as absent.
*/
func TestNonZero(t *testing.T) {
	assert.Nil(t, pointer.NonZero(""))
	assert.Nil(t, pointer.NonZero(0))
	assert.Equal(t, "x", *pointer.NonZero("x"))
	assert.Equal(t, 3, *pointer.NonZero(3))
}

/*
TestFallback substitutes the placeholder for nil only.
*/
func TestFallback(t *testing.T) {
	assert.Equal(t, "N/A", pointer.Fallback(nil, "N/A"))
	assert.Equal(t, "", pointer.Fallback(pointer.To(""), "N/A"))
	assert.Equal(t, 0, pointer.Fallback[int](nil, 0))
}
