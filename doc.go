// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringq provides bounded spinning FIFO rings for in-process
// hand-off between goroutines pinned to distinct CPUs.
//
// Two variants are offered:
//
//   - SPSC: Single-Producer Single-Consumer
//   - MPSC: Multi-Producer Single-Consumer
//
// Both are fixed-capacity power-of-two rings that never allocate after
// construction and never take a mutex on the data path. Full and empty
// are transient conditions, not errors: the blocking Enqueue and Dequeue
// operations busy-wait with a CPU pause hint until they can proceed, and
// the Try variants return [ErrWouldBlock] instead.
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	q := ringq.NewSPSC[Event](1024)
//	q := ringq.NewMPSC[*Request](4096)
//
// Builder API selects the algorithm from declared constraints:
//
//	q := ringq.Build[Event](ringq.New(1024).SingleProducer().SingleConsumer())  // → SPSC
//	q := ringq.Build[Event](ringq.New(1024).SingleConsumer())                   // → MPSC
//
// # Basic Usage
//
//	q := ringq.NewMPSC[int](1024)
//
//	// Blocking hand-off: spins while full/empty, never parks.
//	value := 42
//	q.Enqueue(&value)
//	got := q.Dequeue()
//
//	// Non-blocking: integrate with your own backpressure.
//	if err := q.TryEnqueue(&value); ringq.IsWouldBlock(err) {
//	    // Queue is full - handle backpressure
//	}
//
// # Common Patterns
//
// Pipeline Stage (SPSC):
//
//	// Stage 1 → Queue → Stage 2
//	q := ringq.NewSPSC[Data](1024)
//
//	go func() { // Producer (Stage 1)
//	    for data := range input {
//	        q.Enqueue(&data)
//	    }
//	}()
//
//	go func() { // Consumer (Stage 2)
//	    for {
//	        process(q.Dequeue())
//	    }
//	}()
//
// Event Aggregation (MPSC):
//
//	// Multiple event sources → Single processor
//	q := ringq.NewMPSC[Event](4096)
//
//	for sensor := range slices.Values(sensors) {
//	    go func(s Sensor) {
//	        for ev := range s.Events() {
//	            q.Enqueue(&ev)
//	        }
//	    }(sensor)
//	}
//
//	go func() { // Single consumer (aggregator)
//	    for {
//	        aggregate(q.Dequeue())
//	    }
//	}()
//
// # Spinning vs Parking
//
// The blocking operations never touch a kernel primitive: a full producer
// and an empty consumer burn their core, emitting a pause hint each
// iteration. The design trades CPU for sub-microsecond hand-off latency
// between pinned threads. Consequently no operation is
// cancellable and there is no deadline API. Higher layers wanting
// cancellation must poll a flag of their own and may need to enqueue a
// sentinel element to unblock a stuck consumer. If you want to yield the
// core instead, use the Try variants with [code.hybscloud.com/iox]'s
// Backoff.
//
// # Ordering Guarantees
//
//   - SPSC: every element is dequeued in enqueue order.
//   - MPSC: elements from a single producer are dequeued in that
//     producer's enqueue order. Across producers, order is the
//     linearization of tail-cursor CAS successes.
//
// # Capacity
//
// Capacity must be a power of 2, at least 2; constructors panic
// otherwise. One slot stays vacant to distinguish full from empty, so a
// queue of capacity n holds at most n-1 elements:
//
//	q := ringq.NewSPSC[int](1024)  // holds up to 1023 elements
//
// Length is intentionally not provided because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Track counts in application logic when needed.
//
// # Thread Safety
//
// Both variants are strictly single-consumer. SPSC is additionally
// single-producer. Violating these constraints (e.g., two consumers, or
// two producers on SPSC) causes undefined behavior including data
// corruption. Clear is not thread-safe on either variant and is meant
// for teardown or reuse when no other goroutine touches the queue.
//
// # Queue Flavors
//
// Besides the generic queues, Indirect variants carry uintptr values
// (pool indices, handles) with the same protocol and surface:
//
//	freeList := ringq.NewSPSCIndirect(1024)
//	handles := ringq.NewMPSCIndirect(4096)
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives but
// cannot observe happens-before relationships established through atomic
// memory orderings on separate variables. These queues synchronize
// payload access through cursor and slot-state atomics with
// acquire-release semantics; the detector reports false positives on
// them. Concurrent tests skip themselves when [RaceEnabled] is true, and
// concurrent examples and benchmarks are excluded via //go:build !race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering, [code.hybscloud.com/spin] for CPU pause
// instructions, and [code.hybscloud.com/iox] for semantic errors.
package ringq
