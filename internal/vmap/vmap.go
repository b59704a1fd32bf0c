// Package vmap implements hash map with composite (key, value.Value) keys.
package vmap

import (
	"github.com/ava12/nlgram/value"
)

type entry[T any] struct {
	value value.Value
	item  T
}

type bucketKey[K comparable] struct {
	key  K
	hash uint64
}

// Map implements generic hashmap keyed by a comparable key and a structural value.
// Values are hashed with value.Value.Hash, colliding values are told apart with value.Value.Equal.
// Entries cannot be deleted.
type Map[K comparable, T any] struct {
	buckets map[bucketKey[K]][]entry[T]
	size    int
}

// New creates empty map.
func New[K comparable, T any]() *Map[K, T] {
	return &Map[K, T]{buckets: make(map[bucketKey[K]][]entry[T])}
}

// Get returns stored item and a flag telling whether the key is stored in the map.
// Returns zero item if the key is not present.
func (m *Map[K, T]) Get(key K, v value.Value) (T, bool) {
	for _, e := range m.buckets[bucketKey[K]{key, v.Hash()}] {
		if e.value.Equal(v) {
			return e.item, true
		}
	}

	var zero T
	return zero, false
}

// Set adds or rewrites item for given key.
func (m *Map[K, T]) Set(key K, v value.Value, item T) {
	bk := bucketKey[K]{key, v.Hash()}
	bucket := m.buckets[bk]
	for i := range bucket {
		if bucket[i].value.Equal(v) {
			bucket[i].item = item
			return
		}
	}

	m.buckets[bk] = append(bucket, entry[T]{v, item})
	m.size++
}

// Len returns the number of stored entries.
func (m *Map[K, T]) Len() int {
	return m.size
}
