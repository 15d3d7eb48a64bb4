// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Per-slot states. A slot cycles slotEmpty → slotWriting → slotOccupied →
// slotEmpty. The state, not the cursors, is the source of truth for
// occupancy: producers race on both the tail cursor and the slot, so
// occupancy cannot be derived from the cursors alone as in SPSC.
const (
	slotEmpty uint64 = iota
	slotWriting
	slotOccupied
)

type mpscSlot[T any] struct {
	state atomix.Uint64
	data  T
	_     padShort
}

// MPSC is a multi-producer single-consumer bounded queue.
//
// Producers claim a slot in two steps, without a lock: first the slot's
// state (CAS slotEmpty → slotWriting), then the tail cursor (CAS observed
// → successor). Losing the cursor race rolls the slot back to slotEmpty.
// Either step alone is insufficient: two producers that read the same
// tail can each win the state CAS on different slots, and a bare cursor
// CAS would advance onto a slot the consumer has not drained yet. Holding
// the slot as a ticket while racing on the cursor closes both windows.
//
// The protocol is lock-free, not wait-free: a producer may retry
// indefinitely under contention, but every successful cursor CAS is
// global progress.
//
// Memory: n slots, 64+ bytes per slot
type MPSC[T any] struct {
	_      pad
	head   atomix.Uint64 // Consumer reads from here
	_      pad
	tail   atomix.Uint64 // Producers CAS here
	_      pad
	buffer []mpscSlot[T]
	size   uint64
	mask   uint64
}

// NewMPSC creates a new MPSC queue.
// Capacity must be a power of 2, >= 2; panics otherwise.
// Every slot starts in state slotEmpty.
func NewMPSC[T any](capacity int) *MPSC[T] {
	checkCapacity(capacity)

	n := uint64(capacity)
	return &MPSC[T]{
		buffer: make([]mpscSlot[T], n),
		size:   n,
		mask:   n - 1,
	}
}

func (q *MPSC[T]) distance(from, to uint64) uint64 {
	return (to - from + q.size) & q.mask
}

func (q *MPSC[T]) incremented(i uint64) uint64 {
	return (i + 1) & q.mask
}

// claim reserves the slot at the current tail for this producer.
// Returns the claimed slot, or nil when the ring is full (so the caller
// decides whether to spin or report backpressure). On any intra-claim
// race the observed state is stale; the caller retries.
func (q *MPSC[T]) claim() *mpscSlot[T] {
	tail := q.tail.LoadRelaxed()
	head := q.head.LoadAcquire()

	if q.distance(tail, head) == 1 {
		return nil // Ring full
	}

	slot := &q.buffer[tail]
	if !slot.state.CompareAndSwapRelaxed(slotEmpty, slotWriting) {
		// Another producer holds this slot, or the consumer has not
		// drained it yet.
		return nil
	}
	if !q.tail.CompareAndSwapRelaxed(tail, q.incremented(tail)) {
		// Lost the cursor race: the tail we observed was stale.
		// Release the ticket and start over.
		slot.state.StoreRelaxed(slotEmpty)
		return nil
	}
	return slot
}

// full reports whether the ring looked full on the most recent
// cursor observation.
func (q *MPSC[T]) full() bool {
	return q.distance(q.tail.LoadRelaxed(), q.head.LoadAcquire()) == 1
}

// Enqueue adds an element to the queue (multiple producers safe),
// spinning while the queue is full or the claimed slot races.
func (q *MPSC[T]) Enqueue(elem *T) {
	sw := spin.Wait{}
	for {
		if slot := q.claim(); slot != nil {
			slot.data = *elem
			slot.state.StoreRelease(slotOccupied)
			return
		}
		sw.Once()
	}
}

// TryEnqueue adds an element to the queue (multiple producers safe).
// Returns ErrWouldBlock if the queue is full. Claim races that are not
// full conditions retry internally.
func (q *MPSC[T]) TryEnqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		if slot := q.claim(); slot != nil {
			slot.data = *elem
			slot.state.StoreRelease(slotOccupied)
			return nil
		}
		if q.full() {
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// Dequeue removes and returns the next element (single consumer only),
// spinning while the queue is empty.
func (q *MPSC[T]) Dequeue() T {
	head := q.head.LoadRelaxed()
	slot := &q.buffer[head]

	if slot.state.LoadAcquire() != slotOccupied {
		sw := spin.Wait{}
		for slot.state.LoadAcquire() != slotOccupied {
			sw.Once()
		}
	}

	elem := slot.data
	var zero T
	slot.data = zero
	q.head.StoreRelease(q.incremented(head))
	slot.state.StoreRelease(slotEmpty)
	return elem
}

// TryDequeue removes and returns the next element (single consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *MPSC[T]) TryDequeue() (T, error) {
	head := q.head.LoadRelaxed()
	slot := &q.buffer[head]

	if slot.state.LoadAcquire() != slotOccupied {
		var zero T
		return zero, ErrWouldBlock
	}

	elem := slot.data
	var zero T
	slot.data = zero
	q.head.StoreRelease(q.incremented(head))
	slot.state.StoreRelease(slotEmpty)
	return elem, nil
}

// Clear drops the element of every occupied slot and resets that slot to
// slotEmpty. Cursors are left where they are: slot state alone determines
// occupancy, and a cursor reset could collide with a stale producer
// observation if the queue is reused.
//
// Clearing a drained queue (head == tail) leaves it ready for reuse from
// its current ring position. Clearing residue skews the cursors against
// the slot states; reconstruct the queue instead of reusing it then.
//
// Not thread-safe: no producer or consumer may be active.
func (q *MPSC[T]) Clear() {
	var zero T
	for i := range q.buffer {
		slot := &q.buffer[i]
		if slot.state.LoadRelaxed() == slotOccupied {
			slot.data = zero
			slot.state.StoreRelaxed(slotEmpty)
		}
	}
}

// Cap returns the number of slots in the ring.
// At most Cap()-1 elements are in flight at any time.
func (q *MPSC[T]) Cap() int {
	return int(q.size)
}
