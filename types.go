// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// Queue is the combined producer-consumer interface for a FIFO ring.
//
// Queue provides blocking Enqueue and Dequeue operations that spin until
// they can proceed, plus non-blocking Try variants that return
// ErrWouldBlock instead of waiting.
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Track counts in application logic when needed.
type Queue[T any] interface {
	Producer[T]
	Consumer[T]

	// Cap returns the number of slots in the ring. One slot is kept as a
	// sentinel to distinguish full from empty, so at most Cap()-1 elements
	// are in flight at any time.
	Cap() int

	// Clear drops every element currently held by the queue.
	// Not thread-safe: no producer or consumer may be active.
	Clear()
}

// Producer is the interface for enqueueing elements.
//
// The element is passed by pointer to avoid copying large structs at the
// call boundary. The queue stores a copy of the pointed-to value, so the
// original can be modified after the operation returns.
type Producer[T any] interface {
	// Enqueue adds an element to the queue, spinning while the queue
	// is full. It emits a CPU pause hint on each spin iteration and
	// never parks on a kernel primitive.
	//
	// Thread safety depends on queue type:
	//   - SPSC: single producer only
	//   - MPSC: multiple producers safe
	Enqueue(elem *T)

	// TryEnqueue adds an element to the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if the queue is full.
	TryEnqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
//
// Both queue types are single-consumer: exactly one goroutine may call
// Dequeue or TryDequeue. The element is returned by value and the vacated
// slot is cleared to allow garbage collection of referenced objects.
type Consumer[T any] interface {
	// Dequeue removes and returns the next element, spinning while the
	// queue is empty. It emits a CPU pause hint on each spin iteration
	// and never parks on a kernel primitive.
	Dequeue() T

	// TryDequeue removes and returns the next element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	TryDequeue() (T, error)
}

// QueueIndirect is the combined interface for indirect (uintptr) queues.
//
// QueueIndirect passes indices or handles instead of full objects. This is
// useful for buffer pools, object pools, or any index-based data structure.
//
// Example (buffer pool):
//
//	pool := make([][]byte, 1024)
//	freeList := ringq.NewSPSCIndirect(1024)
//
//	// Initialize pool
//	for i := range pool {
//	    pool[i] = make([]byte, 4096)
//	    freeList.Enqueue(uintptr(i))
//	}
//
//	// Allocate
//	idx := freeList.Dequeue()
//	buf := pool[idx]
//
//	// Free
//	freeList.Enqueue(idx)
type QueueIndirect interface {
	ProducerIndirect
	ConsumerIndirect
	Cap() int
	Clear()
}

// ProducerIndirect enqueues uintptr values.
type ProducerIndirect interface {
	// Enqueue adds a value to the queue, spinning while the queue is full.
	Enqueue(elem uintptr)

	// TryEnqueue adds a value to the queue (non-blocking).
	// Returns ErrWouldBlock immediately if the queue is full.
	TryEnqueue(elem uintptr) error
}

// ConsumerIndirect dequeues uintptr values.
type ConsumerIndirect interface {
	// Dequeue removes and returns the next value, spinning while the
	// queue is empty.
	Dequeue() uintptr

	// TryDequeue removes and returns the next value (non-blocking).
	// Returns (0, ErrWouldBlock) immediately if the queue is empty.
	TryDequeue() (uintptr, error)
}
