// Package timing reads the platform tick counter and converts tick spans
// to nanoseconds via a once-per-process calibration.
package timing

// RawTick is an opaque reading of the platform tick counter. Values are
// meaningful only relative to other RawTicks from the same process and
// calibration epoch; they do not survive restarts and, on some multi-socket
// hardware, are not comparable across cores.
type RawTick uint64

// Now returns the current tick counter value.
//
// The backing counter is selected at build time: RDTSC on amd64, CNTVCT_EL0
// on arm64, and the OS monotonic clock elsewhere. Every selection is O(1),
// never allocates, never blocks and never fails; the OS fallback is simply
// slower per call.
func Now() RawTick {
	return RawTick(readTicks())
}

// SourceName reports which counter backs Now on this build.
func SourceName() string {
	return sourceName
}
