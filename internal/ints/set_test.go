package ints

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptySet(t *testing.T) {
	var s Set
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(0))
	assert.False(t, s.Contains(-1))
	assert.Empty(t, s.ToSlice())
}

func TestSetItems(t *testing.T) {
	s := NewSet(130, 3, 64, 3, -5, 0)
	assert.Equal(t, []int{0, 3, 64, 130}, s.ToSlice())
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Contains(64))
	assert.False(t, s.Contains(65))
	assert.False(t, s.Contains(1000))

	s.Clear()
	assert.Equal(t, 0, s.Len())
	s.Add(1)
	assert.Equal(t, []int{1}, s.ToSlice())
}
