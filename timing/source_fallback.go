//go:build !amd64 && !arm64 && !linux

package timing

import "time"

// fallbackEpoch anchors the monotonic reading so ticks fit comfortably in
// a uint64 for the life of the process.
var fallbackEpoch = time.Now()

// readTicks returns nanoseconds of monotonic time since process start.
func readTicks() uint64 {
	return uint64(time.Since(fallbackEpoch).Nanoseconds())
}

const sourceName = "monotonic"
