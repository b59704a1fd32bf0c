package vmap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ava12/nlgram/value"
)

func TestEmptyMap(t *testing.T) {
	m := New[string, int]()

	en, found := m.Get("", value.Null)
	assert.Equal(t, 0, en)
	assert.False(t, found)
	assert.Equal(t, 0, m.Len())
}

func TestCompositeKey(t *testing.T) {
	m := New[string, int]()
	v := value.List(value.Number(1), value.String("a"))

	m.Set("foo", v, 1)
	m.Set("bar", v, 2)
	m.Set("foo", value.Null, 3)

	en, found := m.Get("foo", value.List(value.Number(1), value.String("a")))
	assert.True(t, found)
	assert.Equal(t, 1, en)

	en, found = m.Get("bar", v)
	assert.True(t, found)
	assert.Equal(t, 2, en)

	en, found = m.Get("foo", value.Null)
	assert.True(t, found)
	assert.Equal(t, 3, en)

	_, found = m.Get("bar", value.Null)
	assert.False(t, found)
	assert.Equal(t, 3, m.Len())
}

func TestRewrite(t *testing.T) {
	m := New[int, string]()
	m.Set(1, value.Number(2), "a")
	m.Set(1, value.Number(2), "b")

	en, found := m.Get(1, value.Number(2))
	assert.True(t, found)
	assert.Equal(t, "b", en)
	assert.Equal(t, 1, m.Len())
}
