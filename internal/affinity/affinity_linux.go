// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package affinity

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin locks the calling goroutine to its OS thread and binds that thread
// to the given CPU. It returns an unpin function that releases the
// thread; the affinity mask is left in place, as the thread is returned
// to the runtime's pool anyway.
//
// A failed sched_setaffinity call (cgroup-restricted CPU set, cpu out of
// range) is not an error worth surfacing here: the queues stay correct
// without pinning, only the latency profile degrades.
func Pin(cpu int) (unpin func()) {
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	_ = unix.SchedSetaffinity(0, &set)

	return runtime.UnlockOSThread
}
