// Package ints contains a bit set of small non-negative integers.
package ints

import "math/bits"

const (
	chunkShift = 5 + (^uint(0) >> 32 & 1)
	chunkSize  = 1 << chunkShift
)

// Set is a set of non-negative integers. Zero value is an empty set.
type Set struct {
	chunks []uint
}

// NewSet creates a set containing items.
func NewSet(items ...int) *Set {
	return (&Set{}).Add(items...)
}

func (s *Set) grow(item int) {
	n := item>>chunkShift + 1
	if n > len(s.chunks) {
		s.chunks = append(s.chunks, make([]uint, n-len(s.chunks))...)
	}
}

// Add adds items, negative items are ignored.
func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}
		s.grow(item)
		s.chunks[item>>chunkShift] |= 1 << (uint(item) & (chunkSize - 1))
	}
	return s
}

// Contains reports whether item is in the set.
func (s *Set) Contains(item int) bool {
	if item < 0 || item>>chunkShift >= len(s.chunks) {
		return false
	}
	return s.chunks[item>>chunkShift]&(1<<(uint(item)&(chunkSize-1))) != 0
}

// Len returns number of items.
func (s *Set) Len() int {
	result := 0
	for _, chunk := range s.chunks {
		result += bits.OnesCount(chunk)
	}
	return result
}

// Clear removes all items keeping allocated space.
func (s *Set) Clear() {
	clear(s.chunks)
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	for i, chunk := range s.chunks {
		for chunk != 0 {
			bit := bits.TrailingZeros(chunk)
			result = append(result, i<<chunkShift+bit)
			chunk &= chunk - 1
		}
	}
	return result
}
