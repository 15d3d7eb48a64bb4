// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command mpsc-stream measures multi-producer single-consumer hand-off.
//
// Each pinned producer p streams p, p+P, p+2P, ... so that the union of
// all streams is exactly 0..n*P-1. The pinned consumer sums the payloads
// and checks the closed-form expected total.
//
// Usage:
//
//	go run ./cmd/mpsc-stream -producers 3 -n 16777216 -cap 1024
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"code.hybscloud.com/ringq"
	"code.hybscloud.com/ringq/internal/affinity"
)

type thing struct {
	x     uint64
	bloat [128]byte
}

func main() {
	producers := flag.Int("producers", 3, "number of producer goroutines")
	perProducer := flag.Uint64("n", 1<<24, "elements per producer")
	capacity := flag.Int("cap", 1<<10, "ring capacity (power of 2)")
	cpus := flag.Int("cpus", 4, "CPUs to spread pinning over")
	flag.Parse()

	total := uint64(*producers) * *perProducer
	expected := (total - 1) * total / 2

	fmt.Printf("Sending %d objects through MPSC ring of capacity %d with %d producers\n",
		total, *capacity-1, *producers)

	q := ringq.NewMPSC[thing](*capacity)
	done := make(chan uint64, 1)

	start := time.Now()

	go func() {
		defer affinity.Pin(*cpus - 1)()
		var sum uint64
		for i := uint64(0); i < total; i++ {
			sum += q.Dequeue().x
		}
		done <- sum
	}()

	for p := 0; p < *producers; p++ {
		go func(first uint64) {
			defer affinity.Pin(int(first) % *cpus)()
			step := uint64(*producers)
			for i := uint64(0); i < *perProducer; i++ {
				t := thing{x: first + i*step}
				q.Enqueue(&t)
			}
		}(uint64(p))
	}

	sum := <-done
	elapsed := time.Since(start)

	fmt.Printf("MPSC took %v\nExpected %d, got %d: ", elapsed, expected, sum)
	if sum != expected {
		fmt.Println("NOK!")
		os.Exit(1)
	}
	fmt.Println("OK!")
}
