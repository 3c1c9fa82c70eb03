// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveThreads resolves the --threads value: n > 0 is used as-is,
// anything else means one worker per CPU.
func EffectiveThreads(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// ChannelBuffer sizes the result channel between scorer and writer so that
// every worker can have a few results in flight.
func ChannelBuffer(threads int) int {
	if threads < 1 {
		threads = 1
	}
	return threads * 4
}
