// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// Options configures queue creation and algorithm selection.
type Options struct {
	// Producer/Consumer constraints (determines queue type)
	singleProducer bool
	singleConsumer bool

	// Capacity (must be a power of 2, >= 2)
	capacity int
}

// Builder creates queues with fluent configuration.
//
// Builder provides a fluent API for configuring and creating queues.
// The builder selects the algorithm based on producer constraints.
// Both algorithms are single-consumer; SingleConsumer() must be declared
// on every build path.
//
// Example:
//
//	// SPSC queue (optimal for single producer/consumer)
//	q := ringq.BuildSPSC[Event](ringq.New(1024).SingleProducer().SingleConsumer())
//
//	// MPSC queue (event aggregation from many goroutines)
//	q := ringq.BuildMPSC[Event](ringq.New(4096).SingleConsumer())
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// Capacity must be a power of 2 and at least 2; New panics otherwise.
// One slot is reserved as a sentinel, so a queue of capacity n holds at
// most n-1 elements.
//
// Example:
//
//	b := ringq.New(1024)
//	q := ringq.BuildSPSC[int](b.SingleProducer().SingleConsumer())
//
//	// Or chain directly
//	q := ringq.BuildMPSC[int](ringq.New(1024).SingleConsumer())
func New(capacity int) *Builder {
	checkCapacity(capacity)
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will enqueue.
// Selects the SPSC algorithm, which needs no per-slot state.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will dequeue.
// Required: both algorithms in this package are single-consumer.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Build creates a Queue[T] with automatic algorithm selection.
//
// Algorithm selection:
//
//	SingleProducer + SingleConsumer → SPSC (two-cursor ring)
//	SingleConsumer only             → MPSC (per-slot state ring)
//
// Panics unless SingleConsumer() was declared: multi-consumer operation
// is not provided. It would require an arbitration scheme on the read
// side that neither algorithm carries; use a different structure instead
// of fanning consumers out over one of these.
func Build[T any](b *Builder) Queue[T] {
	if !b.opts.singleConsumer {
		panic("ringq: Build requires SingleConsumer()")
	}
	if b.opts.singleProducer {
		return NewSPSC[T](b.opts.capacity)
	}
	return NewMPSC[T](b.opts.capacity)
}

// BuildSPSC creates an SPSC queue with compile-time type safety.
// Panics if builder is not configured with SingleProducer().SingleConsumer().
func BuildSPSC[T any](b *Builder) *SPSC[T] {
	if !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("ringq: BuildSPSC requires SingleProducer().SingleConsumer()")
	}
	return NewSPSC[T](b.opts.capacity)
}

// BuildMPSC creates an MPSC queue with compile-time type safety.
// Panics if builder is not configured with SingleConsumer() only.
func BuildMPSC[T any](b *Builder) *MPSC[T] {
	if b.opts.singleProducer || !b.opts.singleConsumer {
		panic("ringq: BuildMPSC requires SingleConsumer() without SingleProducer()")
	}
	return NewMPSC[T](b.opts.capacity)
}

// BuildIndirect creates a QueueIndirect for uintptr values.
//
// Algorithm selection follows Build: SPSC when SingleProducer() is
// declared, MPSC otherwise. Panics unless SingleConsumer() was declared.
func (b *Builder) BuildIndirect() QueueIndirect {
	if !b.opts.singleConsumer {
		panic("ringq: BuildIndirect requires SingleConsumer()")
	}
	if b.opts.singleProducer {
		return NewSPSCIndirect(b.opts.capacity)
	}
	return NewMPSCIndirect(b.opts.capacity)
}

// checkCapacity validates the ring size precondition shared by all
// constructors: a power of 2, at least 2. Violations are programming
// errors, not runtime conditions, and panic.
func checkCapacity(capacity int) {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic("ringq: capacity must be a power of 2 and >= 2")
	}
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill cache line after 8-byte field.
type padShort [64 - 8]byte
