//go:build arm64

package timing

// readTicks returns the virtual counter CNTVCT_EL0.
// Implemented in cntvct_arm64.s.
//
//go:noescape
func readTicks() uint64

const sourceName = "cntvct_el0"
