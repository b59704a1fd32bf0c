// Package queue contains a FIFO ring buffer used as a work agenda.
package queue

const minCapacity = 4

// Queue is a growable FIFO ring buffer. Zero value is not usable, use New.
type Queue[T any] struct {
	items []T
	head  int
	count int
	zero  T
}

// New creates a queue containing items.
func New[T any](items ...T) *Queue[T] {
	q := &Queue[T]{items: make([]T, capacityFor(len(items)))}
	copy(q.items, items)
	q.count = len(items)
	return q
}

func capacityFor(n int) int {
	c := minCapacity
	for c < n {
		c <<= 1
	}
	return c
}

// IsEmpty reports whether queue has no items.
func (q *Queue[T]) IsEmpty() bool {
	return q.count == 0
}

// Len returns number of items.
func (q *Queue[T]) Len() int {
	return q.count
}

// Append adds item to the tail.
func (q *Queue[T]) Append(item T) *Queue[T] {
	if q.count == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.count)&(len(q.items)-1)] = item
	q.count++
	return q
}

// First removes and returns the head item, false if queue is empty.
func (q *Queue[T]) First() (T, bool) {
	if q.count == 0 {
		return q.zero, false
	}

	item := q.items[q.head]
	q.items[q.head] = q.zero
	q.head = (q.head + 1) & (len(q.items) - 1)
	q.count--
	return item, true
}

// Reset removes all items keeping allocated space.
func (q *Queue[T]) Reset() {
	clear(q.items)
	q.head = 0
	q.count = 0
}

func (q *Queue[T]) grow() {
	items := make([]T, len(q.items)<<1)
	n := copy(items, q.items[q.head:])
	copy(items[n:], q.items[:q.head])
	q.items = items
	q.head = 0
}
