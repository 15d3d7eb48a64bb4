// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package affinity pins goroutines to CPU cores for the stream harnesses.
//
// The queues do not require pinning for correctness; their throughput
// characteristics assume it. Pinning producer and consumer to distinct
// cores keeps the cursor cache lines resident where the protocol expects
// them.
package affinity
