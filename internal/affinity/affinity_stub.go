// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package affinity

import "runtime"

// Pin locks the calling goroutine to its OS thread. CPU binding is not
// available on this platform; thread locking alone still stabilizes the
// scheduling of producer/consumer goroutines.
func Pin(cpu int) (unpin func()) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
