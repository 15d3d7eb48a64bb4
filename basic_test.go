// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/ringq"
)

// =============================================================================
// Construction
// =============================================================================

// TestCapacityValidation verifies the shared constructor precondition:
// capacity must be a power of 2 and at least 2.
func TestCapacityValidation(t *testing.T) {
	for _, capacity := range []int{-4, 0, 1, 3, 6, 100, 1000} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewSPSC(%d): expected panic", capacity)
				}
			}()
			ringq.NewSPSC[int](capacity)
		}()
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewMPSC(%d): expected panic", capacity)
				}
			}()
			ringq.NewMPSC[int](capacity)
		}()
	}

	for _, capacity := range []int{2, 4, 8, 1024} {
		if got := ringq.NewSPSC[int](capacity).Cap(); got != capacity {
			t.Errorf("NewSPSC(%d).Cap: got %d", capacity, got)
		}
		if got := ringq.NewMPSC[int](capacity).Cap(); got != capacity {
			t.Errorf("NewMPSC(%d).Cap: got %d", capacity, got)
		}
	}
}

// =============================================================================
// Generic Queues - Basic Operations
// =============================================================================

// TestSPSCBasic tests SPSC operations on the Try surface.
// A ring of capacity 4 holds at most 3 elements: one slot is the
// full/empty sentinel.
func TestSPSCBasic(t *testing.T) {
	q := ringq.NewSPSC[int](4)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	// Enqueue to effective capacity
	for i := range 3 {
		v := i + 100
		if err := q.TryEnqueue(&v); err != nil {
			t.Fatalf("TryEnqueue(%d): %v", i, err)
		}
	}

	// Full queue returns ErrWouldBlock
	v := 999
	if err := q.TryEnqueue(&v); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("TryEnqueue on full: got %v, want ErrWouldBlock", err)
	}

	// Dequeue in FIFO order
	for i := range 3 {
		val, err := q.TryDequeue()
		if err != nil {
			t.Fatalf("TryDequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("TryDequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	// Empty queue returns ErrWouldBlock
	if _, err := q.TryDequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("TryDequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestMPSCBasic tests MPSC operations on the Try surface.
func TestMPSCBasic(t *testing.T) {
	q := ringq.NewMPSC[int](4)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 3 {
		v := i + 100
		if err := q.TryEnqueue(&v); err != nil {
			t.Fatalf("TryEnqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.TryEnqueue(&v); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("TryEnqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 3 {
		val, err := q.TryDequeue()
		if err != nil {
			t.Fatalf("TryDequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("TryDequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.TryDequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("TryDequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestBlockingSmoke runs the blocking surface on an uncontended queue,
// where it must not spin at all.
func TestBlockingSmoke(t *testing.T) {
	spsc := ringq.NewSPSC[int](4)
	for _, v := range []int{1, 2, 3} {
		spsc.Enqueue(&v)
	}
	for _, want := range []int{1, 2, 3} {
		if got := spsc.Dequeue(); got != want {
			t.Fatalf("SPSC Dequeue: got %d, want %d", got, want)
		}
	}
	if _, err := spsc.TryDequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("SPSC not empty after drain")
	}

	mpsc := ringq.NewMPSC[int](4)
	for _, v := range []int{1, 2, 3} {
		mpsc.Enqueue(&v)
	}
	for _, want := range []int{1, 2, 3} {
		if got := mpsc.Dequeue(); got != want {
			t.Fatalf("MPSC Dequeue: got %d, want %d", got, want)
		}
	}
	if _, err := mpsc.TryDequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("MPSC not empty after drain")
	}
}

// TestCapacity2Alternation verifies the tightest ring: capacity 2 holds
// exactly one element, so producer and consumer alternate strictly.
func TestCapacity2Alternation(t *testing.T) {
	t.Run("SPSC", func(t *testing.T) {
		q := ringq.NewSPSC[int](2)
		for i := range 10 {
			if err := q.TryEnqueue(&i); err != nil {
				t.Fatalf("TryEnqueue(%d): %v", i, err)
			}
			v := 777
			if err := q.TryEnqueue(&v); !errors.Is(err, ringq.ErrWouldBlock) {
				t.Fatalf("second TryEnqueue: got %v, want ErrWouldBlock", err)
			}
			got, err := q.TryDequeue()
			if err != nil || got != i {
				t.Fatalf("TryDequeue: got (%d, %v), want (%d, nil)", got, err, i)
			}
			if _, err := q.TryDequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
				t.Fatalf("second TryDequeue: got %v, want ErrWouldBlock", err)
			}
		}
	})
	t.Run("MPSC", func(t *testing.T) {
		q := ringq.NewMPSC[int](2)
		for i := range 10 {
			if err := q.TryEnqueue(&i); err != nil {
				t.Fatalf("TryEnqueue(%d): %v", i, err)
			}
			v := 777
			if err := q.TryEnqueue(&v); !errors.Is(err, ringq.ErrWouldBlock) {
				t.Fatalf("second TryEnqueue: got %v, want ErrWouldBlock", err)
			}
			got, err := q.TryDequeue()
			if err != nil || got != i {
				t.Fatalf("TryDequeue: got (%d, %v), want (%d, nil)", got, err, i)
			}
			if _, err := q.TryDequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
				t.Fatalf("second TryDequeue: got %v, want ErrWouldBlock", err)
			}
		}
	})
}

// =============================================================================
// Clear
// =============================================================================

// TestSPSCClear verifies Clear leaves the queue observably identical to a
// freshly constructed one of the same capacity.
func TestSPSCClear(t *testing.T) {
	q := ringq.NewSPSC[*int](8)
	for i := range 3 {
		v := i
		p := &v
		q.Enqueue(&p)
	}

	q.Clear()

	if _, err := q.TryDequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("TryDequeue after Clear: want ErrWouldBlock")
	}

	// A cleared queue accepts a full round of traffic again.
	for i := range 7 {
		v := i
		p := &v
		if err := q.TryEnqueue(&p); err != nil {
			t.Fatalf("TryEnqueue(%d) after Clear: %v", i, err)
		}
	}
	for i := range 7 {
		p, err := q.TryDequeue()
		if err != nil || *p != i {
			t.Fatalf("TryDequeue(%d) after Clear: got %v, %v", i, p, err)
		}
	}
}

// TestMPSCClearResidue verifies Clear drops every occupied slot.
func TestMPSCClearResidue(t *testing.T) {
	q := ringq.NewMPSC[*int](8)
	for i := range 3 {
		v := i + 100
		p := &v
		q.Enqueue(&p)
	}

	q.Clear()

	if _, err := q.TryDequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("TryDequeue after Clear: want ErrWouldBlock")
	}
}

// TestMPSCClearDrained verifies that clearing a drained queue leaves it
// ready for reuse from its current ring position: cursors are not reset,
// traffic resumes mid-ring.
func TestMPSCClearDrained(t *testing.T) {
	q := ringq.NewMPSC[*int](8)

	// Advance the cursors off zero.
	for i := range 5 {
		v := i
		p := &v
		q.Enqueue(&p)
	}
	for range 5 {
		q.Dequeue()
	}

	q.Clear()

	if _, err := q.TryDequeue(); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("TryDequeue after Clear: want ErrWouldBlock")
	}

	for i := range 7 {
		v := i
		p := &v
		if err := q.TryEnqueue(&p); err != nil {
			t.Fatalf("TryEnqueue(%d) after Clear: %v", i, err)
		}
	}
	for i := range 7 {
		p, err := q.TryDequeue()
		if err != nil || *p != i {
			t.Fatalf("TryDequeue(%d) after Clear: got %v, %v", i, p, err)
		}
	}
}
