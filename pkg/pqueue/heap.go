// Package pqueue provides an array-backed binary min-heap.
//
// # Overview
//
// [Heap] orders its elements with a caller-supplied three-way comparison and
// keeps the smallest element at the root. It is the open set of the search
// engine in [github.com/matzehuels/waypoint/pkg/search], but has no
// dependency on it.
//
// # Mutating Keys
//
// The heap has no decrease-key operation. If a caller changes an element in a
// way that affects its comparison while it is on the heap, the heap order is
// no longer guaranteed until [Heap.Resort] is called:
//
//	n.cost = 3 // n is already on h
//	h.Resort()
//	min, _ := h.RemoveMin()
//
// Resort costs O(n log n). The search engine batches all such fixups into a
// single Resort before the next extraction.
//
// # Ordering
//
// Elements that compare equal may emerge in any relative order. There is no
// insertion-order tie-break.
//
// # Concurrency
//
// A Heap is not safe for concurrent use.
package pqueue

import (
	"errors"
	"slices"
)

// DefaultCapacity is the initial backing size used when [New] is given a
// non-positive capacity.
const DefaultCapacity = 7

// ErrEmpty is returned by [Heap.Peek] and [Heap.RemoveMin] when the heap
// holds no elements.
var ErrEmpty = errors.New("pqueue: heap is empty")

// Compare returns a negative number when a orders before b, a positive number
// when b orders before a, and zero when they are equivalent.
type Compare[T any] func(a, b T) int

// Heap is a binary min-heap over T. The zero value is not usable; use [New].
type Heap[T any] struct {
	items []T // backing storage, len(items) == capacity
	count int
	cmp   Compare[T]
}

// New creates an empty heap ordered by cmp with room for capacity elements
// before the first resize. It panics if cmp is nil.
func New[T any](cmp Compare[T], capacity int) *Heap[T] {
	if cmp == nil {
		panic("pqueue: nil compare function")
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Heap[T]{items: make([]T, capacity), cmp: cmp}
}

// Len returns the number of elements on the heap.
func (h *Heap[T]) Len() int { return h.count }

// Cap returns the size of the backing storage.
func (h *Heap[T]) Cap() int { return len(h.items) }

// Add inserts item and restores heap order by sifting it up. The backing
// storage doubles when full.
func (h *Heap[T]) Add(item T) {
	if h.count == len(h.items) {
		h.grow(len(h.items) * 2)
	}
	h.items[h.count] = item
	h.up(h.count)
	h.count++
}

// Peek returns the minimum element without removing it.
func (h *Heap[T]) Peek() (T, error) {
	if h.count == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return h.items[0], nil
}

// RemoveMin removes and returns the minimum element. The last element takes
// the root's place and is sifted down.
//
// The result is only guaranteed to be the minimum if no element was mutated
// since the last [Heap.Resort].
func (h *Heap[T]) RemoveMin() (T, error) {
	var zero T
	if h.count == 0 {
		return zero, ErrEmpty
	}
	item := h.items[0]
	h.count--
	h.items[0] = h.items[h.count]
	h.items[h.count] = zero
	h.down(0)
	return item, nil
}

// Resort re-establishes heap order after elements were mutated in place.
// A slice sorted ascending satisfies the heap property, so a full sort of the
// live elements is sufficient.
func (h *Heap[T]) Resort() {
	slices.SortFunc(h.items[:h.count], h.cmp)
}

// Clear removes all elements but keeps the backing storage.
func (h *Heap[T]) Clear() {
	clear(h.items[:h.count])
	h.count = 0
}

// Items returns a copy of the elements in heap (array) order.
func (h *Heap[T]) Items() []T {
	return slices.Clone(h.items[:h.count])
}

func (h *Heap[T]) grow(n int) {
	items := make([]T, n)
	copy(items, h.items)
	h.items = items
}

func (h *Heap[T]) up(pos int) {
	for pos > 0 {
		parent := (pos - 1) / 2
		if h.cmp(h.items[pos], h.items[parent]) >= 0 {
			return
		}
		h.items[pos], h.items[parent] = h.items[parent], h.items[pos]
		pos = parent
	}
}

func (h *Heap[T]) down(pos int) {
	for {
		child := h.smallerChild(pos)
		if child == pos || h.cmp(h.items[pos], h.items[child]) <= 0 {
			return
		}
		h.items[pos], h.items[child] = h.items[child], h.items[pos]
		pos = child
	}
}

// smallerChild returns the index of pos's smaller child, or pos itself when
// it is a leaf.
func (h *Heap[T]) smallerChild(pos int) int {
	left := 2*pos + 1
	if left >= h.count {
		return pos
	}
	right := left + 1
	if right >= h.count || h.cmp(h.items[left], h.items[right]) < 0 {
		return left
	}
	return right
}
