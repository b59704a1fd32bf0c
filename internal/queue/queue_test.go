package queue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityFor(t *testing.T) {
	for i := 0; i <= 33; i++ {
		t.Run(fmt.Sprintf("%d elements", i), func(t *testing.T) {
			c := capacityFor(i)
			assert.GreaterOrEqual(t, c, minCapacity)
			assert.GreaterOrEqual(t, c, i)
			assert.Zero(t, c&(c-1), "expecting power of 2, got %d", c)
		})
	}
}

func TestEmpty(t *testing.T) {
	q := New[int]()
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, q.Len())
	_, ok := q.First()
	assert.False(t, ok)
}

func TestFifoOrder(t *testing.T) {
	q := New(1, 2, 3)
	for i := 4; i <= 20; i++ {
		q.Append(i)
	}
	require.Equal(t, 20, q.Len())

	for i := 1; i <= 20; i++ {
		item, ok := q.First()
		require.True(t, ok)
		require.Equal(t, i, item)
	}
	assert.True(t, q.IsEmpty())
}

func TestWrapAround(t *testing.T) {
	q := New[string]()
	expected := 0
	next := 0
	for round := 0; round < 10; round++ {
		for i := 0; i < 3; i++ {
			q.Append(fmt.Sprint(next))
			next++
		}
		for i := 0; i < 2; i++ {
			item, ok := q.First()
			require.True(t, ok)
			require.Equal(t, fmt.Sprint(expected), item)
			expected++
		}
	}
	assert.Equal(t, next-expected, q.Len())
}

func TestReset(t *testing.T) {
	q := New(1, 2, 3, 4, 5)
	q.First()
	q.Reset()
	assert.True(t, q.IsEmpty())
	q.Append(7)
	item, _ := q.First()
	assert.Equal(t, 7, item)
}
