package sliceutils_test

import (
	"testing"

	"github.com/soartravel/soar/internal/sliceutils"
	"github.com/stretchr/testify/assert"
)

func TestHead(t *testing.T) {
	in := []int{1, 2, 3, 4}

	assert.Equal(t, []int{1, 2, 3}, sliceutils.Head(in, 3))
	assert.Equal(t, []int{1, 2, 3, 4}, sliceutils.Head(in, 10))
	assert.Empty(t, sliceutils.Head(in, 0))
	assert.Empty(t, sliceutils.Head(in, -1))
	assert.Empty(t, sliceutils.Head([]int(nil), 3))
}
