// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command spsc-stream measures single-producer single-consumer hand-off.
//
// One pinned producer streams sequential values through an SPSC ring;
// the pinned consumer verifies it observes exactly that sequence.
//
// Usage:
//
//	go run ./cmd/spsc-stream -n 50331648 -cap 1024 -pcpu 0 -ccpu 1
package main

import (
	"flag"
	"fmt"
	"os"
	"time"
	"unsafe"

	"code.hybscloud.com/ringq"
	"code.hybscloud.com/ringq/internal/affinity"
)

// thing matches the element shape the queues are tuned for: one word of
// payload plus enough bloat that slots do not share cache lines.
type thing struct {
	x     uint64
	bloat [128]byte
}

func main() {
	count := flag.Uint64("n", 50_331_648, "number of elements to stream")
	capacity := flag.Int("cap", 1<<10, "ring capacity (power of 2)")
	pcpu := flag.Int("pcpu", 0, "producer CPU")
	ccpu := flag.Int("ccpu", 1, "consumer CPU")
	flag.Parse()

	fmt.Printf("Sending %d objects of size %d bytes through SPSC ring of capacity %d\n",
		*count, unsafe.Sizeof(thing{}), *capacity-1)

	q := ringq.NewSPSC[thing](*capacity)
	done := make(chan error, 1)

	start := time.Now()

	go func() {
		defer affinity.Pin(*ccpu)()
		for i := uint64(0); i < *count; i++ {
			if got := q.Dequeue().x; got != i {
				done <- fmt.Errorf("sequence broken at %d: got %d", i, got)
				return
			}
		}
		done <- nil
	}()

	go func() {
		defer affinity.Pin(*pcpu)()
		for i := uint64(0); i < *count; i++ {
			t := thing{x: i}
			q.Enqueue(&t)
		}
	}()

	if err := <-done; err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	perOp := float64(elapsed.Nanoseconds()) / float64(*count)
	fmt.Printf("SPSC took %v (%.2f ns/op, %.2f M ops/sec)\n",
		elapsed, perOp, 1000/perOp)
}
