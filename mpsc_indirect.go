// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

type mpscIndirectSlot struct {
	state atomix.Uint64
	data  uintptr
	_     [64 - 16]byte
}

// MPSCIndirect is an MPSC queue for uintptr values.
//
// Same two-step claim protocol as MPSC, specialized to machine-word
// payloads. See the MPSC documentation for the protocol.
type MPSCIndirect struct {
	_      pad
	head   atomix.Uint64
	_      pad
	tail   atomix.Uint64
	_      pad
	buffer []mpscIndirectSlot
	size   uint64
	mask   uint64
}

// NewMPSCIndirect creates a new MPSC queue for uintptr values.
// Capacity must be a power of 2, >= 2; panics otherwise.
func NewMPSCIndirect(capacity int) *MPSCIndirect {
	checkCapacity(capacity)

	n := uint64(capacity)
	return &MPSCIndirect{
		buffer: make([]mpscIndirectSlot, n),
		size:   n,
		mask:   n - 1,
	}
}

func (q *MPSCIndirect) distance(from, to uint64) uint64 {
	return (to - from + q.size) & q.mask
}

func (q *MPSCIndirect) incremented(i uint64) uint64 {
	return (i + 1) & q.mask
}

func (q *MPSCIndirect) claim() *mpscIndirectSlot {
	tail := q.tail.LoadRelaxed()
	head := q.head.LoadAcquire()

	if q.distance(tail, head) == 1 {
		return nil // Ring full
	}

	slot := &q.buffer[tail]
	if !slot.state.CompareAndSwapRelaxed(slotEmpty, slotWriting) {
		return nil
	}
	if !q.tail.CompareAndSwapRelaxed(tail, q.incremented(tail)) {
		slot.state.StoreRelaxed(slotEmpty)
		return nil
	}
	return slot
}

func (q *MPSCIndirect) full() bool {
	return q.distance(q.tail.LoadRelaxed(), q.head.LoadAcquire()) == 1
}

// Enqueue adds a value (multiple producers safe),
// spinning while the queue is full or the claimed slot races.
func (q *MPSCIndirect) Enqueue(elem uintptr) {
	sw := spin.Wait{}
	for {
		if slot := q.claim(); slot != nil {
			slot.data = elem
			slot.state.StoreRelease(slotOccupied)
			return
		}
		sw.Once()
	}
}

// TryEnqueue adds a value (multiple producers safe).
// Returns ErrWouldBlock if the queue is full.
func (q *MPSCIndirect) TryEnqueue(elem uintptr) error {
	sw := spin.Wait{}
	for {
		if slot := q.claim(); slot != nil {
			slot.data = elem
			slot.state.StoreRelease(slotOccupied)
			return nil
		}
		if q.full() {
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// Dequeue removes and returns the next value (single consumer only),
// spinning while the queue is empty.
func (q *MPSCIndirect) Dequeue() uintptr {
	head := q.head.LoadRelaxed()
	slot := &q.buffer[head]

	if slot.state.LoadAcquire() != slotOccupied {
		sw := spin.Wait{}
		for slot.state.LoadAcquire() != slotOccupied {
			sw.Once()
		}
	}

	elem := slot.data
	slot.data = 0
	q.head.StoreRelease(q.incremented(head))
	slot.state.StoreRelease(slotEmpty)
	return elem
}

// TryDequeue removes and returns the next value (single consumer only).
// Returns (0, ErrWouldBlock) if the queue is empty.
func (q *MPSCIndirect) TryDequeue() (uintptr, error) {
	head := q.head.LoadRelaxed()
	slot := &q.buffer[head]

	if slot.state.LoadAcquire() != slotOccupied {
		return 0, ErrWouldBlock
	}

	elem := slot.data
	slot.data = 0
	q.head.StoreRelease(q.incremented(head))
	slot.state.StoreRelease(slotEmpty)
	return elem, nil
}

// Clear drops the value of every occupied slot and resets that slot to
// slotEmpty. Cursors are left where they are, as in MPSC.Clear, with the
// same reuse caveat: reconstruct rather than reuse after clearing residue.
// Not thread-safe: no producer or consumer may be active.
func (q *MPSCIndirect) Clear() {
	for i := range q.buffer {
		slot := &q.buffer[i]
		if slot.state.LoadRelaxed() == slotOccupied {
			slot.data = 0
			slot.state.StoreRelaxed(slotEmpty)
		}
	}
}

// Cap returns the number of slots in the ring.
func (q *MPSCIndirect) Cap() int {
	return int(q.size)
}
