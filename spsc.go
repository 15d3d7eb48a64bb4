// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// SPSC is a single-producer single-consumer bounded queue.
//
// The ring is driven by two cursors kept in [0, n): head, owned by the
// consumer, and tail, owned by the producer. Slot i holds an element iff
// i lies in the ring interval [head, tail). One slot stays vacant as the
// full/empty sentinel, so the queue holds at most n-1 elements.
//
// Each side caches the other's cursor to cut cross-core cache line
// traffic; the cached view is refreshed only when it reports the ring
// full (producer) or empty (consumer).
//
// Memory: O(capacity) with no per-slot overhead
type SPSC[T any] struct {
	_          pad
	head       atomix.Uint64 // Consumer reads from here
	_          pad
	cachedTail uint64 // Consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // Producer writes here
	_          pad
	cachedHead uint64 // Producer's cached view of head
	_          pad
	buffer     []T
	size       uint64
	mask       uint64
}

// NewSPSC creates a new SPSC queue.
// Capacity must be a power of 2, >= 2; panics otherwise.
func NewSPSC[T any](capacity int) *SPSC[T] {
	checkCapacity(capacity)

	n := uint64(capacity)
	return &SPSC[T]{
		buffer: make([]T, n),
		size:   n,
		mask:   n - 1,
	}
}

// distance returns the number of ring steps from index from to index to.
func (q *SPSC[T]) distance(from, to uint64) uint64 {
	return (to - from + q.size) & q.mask
}

// incremented returns the ring successor of index i.
func (q *SPSC[T]) incremented(i uint64) uint64 {
	return (i + 1) & q.mask
}

// Enqueue adds an element to the queue (producer only),
// spinning while the queue is full.
func (q *SPSC[T]) Enqueue(elem *T) {
	tail := q.tail.LoadRelaxed()
	if q.distance(q.cachedHead, tail) == q.mask {
		sw := spin.Wait{}
		for {
			q.cachedHead = q.head.LoadAcquire()
			if q.distance(q.cachedHead, tail) != q.mask {
				break
			}
			sw.Once()
		}
	}

	q.buffer[tail] = *elem
	q.tail.StoreRelease(q.incremented(tail))
}

// TryEnqueue adds an element to the queue (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *SPSC[T]) TryEnqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	if q.distance(q.cachedHead, tail) == q.mask {
		q.cachedHead = q.head.LoadAcquire()
		if q.distance(q.cachedHead, tail) == q.mask {
			return ErrWouldBlock
		}
	}

	q.buffer[tail] = *elem
	q.tail.StoreRelease(q.incremented(tail))
	return nil
}

// Dequeue removes and returns the next element (consumer only),
// spinning while the queue is empty.
func (q *SPSC[T]) Dequeue() T {
	head := q.head.LoadRelaxed()
	if head == q.cachedTail {
		sw := spin.Wait{}
		for {
			q.cachedTail = q.tail.LoadAcquire()
			if head != q.cachedTail {
				break
			}
			sw.Once()
		}
	}

	elem := q.buffer[head]
	var zero T
	q.buffer[head] = zero
	q.head.StoreRelease(q.incremented(head))
	return elem
}

// TryDequeue removes and returns the next element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSC[T]) TryDequeue() (T, error) {
	head := q.head.LoadRelaxed()
	if head == q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head == q.cachedTail {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	elem := q.buffer[head]
	var zero T
	q.buffer[head] = zero
	q.head.StoreRelease(q.incremented(head))
	return elem, nil
}

// Clear drops every element and resets both cursors.
// Not thread-safe: no producer or consumer may be active.
func (q *SPSC[T]) Clear() {
	var zero T
	tail := q.tail.LoadRelaxed()
	for i := q.head.LoadRelaxed(); i != tail; i = q.incremented(i) {
		q.buffer[i] = zero
	}
	q.head.StoreRelaxed(0)
	q.tail.StoreRelaxed(0)
	q.cachedHead, q.cachedTail = 0, 0
}

// Cap returns the number of slots in the ring.
// At most Cap()-1 elements are in flight at any time.
func (q *SPSC[T]) Cap() int {
	return int(q.size)
}
