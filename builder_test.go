// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"testing"

	"code.hybscloud.com/ringq"
)

// TestBuilderSelection verifies the builder picks the algorithm matching
// the declared constraints.
func TestBuilderSelection(t *testing.T) {
	if _, ok := ringq.Build[int](ringq.New(8).SingleProducer().SingleConsumer()).(*ringq.SPSC[int]); !ok {
		t.Error("SingleProducer+SingleConsumer: want *SPSC")
	}
	if _, ok := ringq.Build[int](ringq.New(8).SingleConsumer()).(*ringq.MPSC[int]); !ok {
		t.Error("SingleConsumer only: want *MPSC")
	}

	if _, ok := ringq.New(8).SingleProducer().SingleConsumer().BuildIndirect().(*ringq.SPSCIndirect); !ok {
		t.Error("Indirect SingleProducer+SingleConsumer: want *SPSCIndirect")
	}
	if _, ok := ringq.New(8).SingleConsumer().BuildIndirect().(*ringq.MPSCIndirect); !ok {
		t.Error("Indirect SingleConsumer only: want *MPSCIndirect")
	}
}

// TestBuilderConstraints verifies constraint violations panic.
func TestBuilderConstraints(t *testing.T) {
	expectPanic := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		f()
	}

	// Multi-consumer is not provided; every build path requires
	// SingleConsumer().
	expectPanic("Build without SingleConsumer", func() {
		ringq.Build[int](ringq.New(8))
	})
	expectPanic("Build with SingleProducer only", func() {
		ringq.Build[int](ringq.New(8).SingleProducer())
	})
	expectPanic("BuildIndirect without SingleConsumer", func() {
		ringq.New(8).BuildIndirect()
	})

	expectPanic("BuildSPSC without constraints", func() {
		ringq.BuildSPSC[int](ringq.New(8))
	})
	expectPanic("BuildSPSC missing SingleProducer", func() {
		ringq.BuildSPSC[int](ringq.New(8).SingleConsumer())
	})
	expectPanic("BuildMPSC with SingleProducer", func() {
		ringq.BuildMPSC[int](ringq.New(8).SingleProducer().SingleConsumer())
	})
	expectPanic("BuildMPSC without SingleConsumer", func() {
		ringq.BuildMPSC[int](ringq.New(8))
	})

	expectPanic("New with non-power-of-2", func() {
		ringq.New(6)
	})
	expectPanic("New with capacity 1", func() {
		ringq.New(1)
	})
}

// TestBuilderQueueWorks runs a quick round trip through a built queue.
func TestBuilderQueueWorks(t *testing.T) {
	q := ringq.Build[string](ringq.New(4).SingleConsumer())
	for _, s := range []string{"a", "b", "c"} {
		if err := q.TryEnqueue(&s); err != nil {
			t.Fatalf("TryEnqueue(%q): %v", s, err)
		}
	}
	for _, want := range []string{"a", "b", "c"} {
		got, err := q.TryDequeue()
		if err != nil || got != want {
			t.Fatalf("TryDequeue: got (%q, %v), want (%q, nil)", got, err, want)
		}
	}
}
