// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// SPSCIndirect is an SPSC queue for uintptr values.
//
// Same two-cursor protocol as SPSC, specialized to machine-word payloads
// (pool indices, handles). See the SPSC documentation for the protocol.
type SPSCIndirect struct {
	_          pad
	head       atomix.Uint64
	_          pad
	cachedTail uint64
	_          pad
	tail       atomix.Uint64
	_          pad
	cachedHead uint64
	_          pad
	buffer     []uintptr
	size       uint64
	mask       uint64
}

// NewSPSCIndirect creates a new SPSC queue for uintptr values.
// Capacity must be a power of 2, >= 2; panics otherwise.
func NewSPSCIndirect(capacity int) *SPSCIndirect {
	checkCapacity(capacity)

	n := uint64(capacity)
	return &SPSCIndirect{
		buffer: make([]uintptr, n),
		size:   n,
		mask:   n - 1,
	}
}

func (q *SPSCIndirect) distance(from, to uint64) uint64 {
	return (to - from + q.size) & q.mask
}

func (q *SPSCIndirect) incremented(i uint64) uint64 {
	return (i + 1) & q.mask
}

// Enqueue adds a value (producer only), spinning while the queue is full.
func (q *SPSCIndirect) Enqueue(elem uintptr) {
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

	q.buffer[tail] = elem
	q.tail.StoreRelease(q.incremented(tail))
}

// TryEnqueue adds a value (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *SPSCIndirect) TryEnqueue(elem uintptr) error {
	tail := q.tail.LoadRelaxed()
	if q.distance(q.cachedHead, tail) == q.mask {
		q.cachedHead = q.head.LoadAcquire()
		if q.distance(q.cachedHead, tail) == q.mask {
			return ErrWouldBlock
		}
	}

	q.buffer[tail] = elem
	q.tail.StoreRelease(q.incremented(tail))
	return nil
}

// Dequeue removes and returns the next value (consumer only),
// spinning while the queue is empty.
func (q *SPSCIndirect) Dequeue() uintptr {
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
	q.head.StoreRelease(q.incremented(head))
	return elem
}

// TryDequeue removes and returns the next value (consumer only).
// Returns (0, ErrWouldBlock) if the queue is empty.
func (q *SPSCIndirect) TryDequeue() (uintptr, error) {
	head := q.head.LoadRelaxed()
	if head == q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head == q.cachedTail {
			return 0, ErrWouldBlock
		}
	}

	elem := q.buffer[head]
	q.head.StoreRelease(q.incremented(head))
	return elem, nil
}

// Clear drops every value and resets both cursors.
// Not thread-safe: no producer or consumer may be active.
func (q *SPSCIndirect) Clear() {
	tail := q.tail.LoadRelaxed()
	for i := q.head.LoadRelaxed(); i != tail; i = q.incremented(i) {
		q.buffer[i] = 0
	}
	q.head.StoreRelaxed(0)
	q.tail.StoreRelaxed(0)
	q.cachedHead, q.cachedTail = 0, 0
}

// Cap returns the number of slots in the ring.
func (q *SPSCIndirect) Cap() int {
	return int(q.size)
}
