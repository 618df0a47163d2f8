//go:build amd64

package timing

// readTicks returns the CPU time stamp counter.
// Implemented in tsc_amd64.s.
//
//go:noescape
func readTicks() uint64

const sourceName = "rdtsc"
