// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples with concurrent producer/consumer goroutines.
// These trigger false positives with Go's race detector because the queue
// synchronization uses atomic cursors and slot states the detector cannot
// see. The examples are correct; they're excluded from race testing.

package ringq_test

import (
	"fmt"
	"sync"

	"code.hybscloud.com/ringq"
)

// Example_pipeline demonstrates a two-stage pipeline over an SPSC ring
// with the blocking surface: each side simply spins through full/empty.
func Example_pipeline() {
	q := ringq.NewSPSC[int](8)
	done := make(chan struct{})

	// Stage 2: consumer
	go func() {
		defer close(done)
		for range 5 {
			v := q.Dequeue()
			fmt.Println(v * v)
		}
	}()

	// Stage 1: producer
	for i := range 5 {
		v := i + 1
		q.Enqueue(&v)
	}

	<-done

	// Output:
	// 1
	// 4
	// 9
	// 16
	// 25
}

// Example_aggregation demonstrates event aggregation from several
// producers over an MPSC ring.
func Example_aggregation() {
	const producers = 4
	const perProducer = 1000

	q := ringq.NewMPSC[int](64)

	var wg sync.WaitGroup
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perProducer {
				v := 1
				q.Enqueue(&v)
			}
		}()
	}

	total := 0
	for range producers * perProducer {
		total += q.Dequeue()
	}
	wg.Wait()

	fmt.Println("aggregated", total, "events")

	// Output:
	// aggregated 4000 events
}
