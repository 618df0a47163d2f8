package timing

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// ErrUncalibrated is returned by tick conversions invoked before Init has
// completed in this process.
var ErrUncalibrated = errors.New("timing: not calibrated, call Init first")

// calibrationSleep is the wall-clock window used to measure the tick rate.
// Longer windows lower calibration variance; 100ms keeps startup cheap while
// holding the error to roughly 1%.
const calibrationSleep = 100 * time.Millisecond

// calibration is an initialize-once cell holding the ticks-per-nanosecond
// factor. The factor is published through an atomic so that conversions
// racing with Init observe either the final value or the uncalibrated state,
// never a partial write.
type calibration struct {
	once sync.Once

	// Float64bits of the factor; zero until calibrated.
	factor atomic.Uint64

	// read overrides the counter read; nil means the platform source.
	read func() uint64
}

func (c *calibration) init(sleep time.Duration) {
	c.once.Do(func() {
		read := c.read
		if read == nil {
			read = readTicks
		}

		c.factor.Store(math.Float64bits(measureFactor(read, sleep)))
	})
}

// measureFactor samples the tick counter across a wall-clock sleep and
// returns the observed ticks-per-nanosecond ratio.
func measureFactor(read func() uint64, sleep time.Duration) float64 {
	// Warm the counter read path before the timed section.
	read()
	read()

	startTick := read()
	start := time.Now()

	time.Sleep(sleep)

	endTick := read()
	elapsed := time.Since(start)

	if endTick <= startTick || elapsed <= 0 {
		// Counter went backwards (cross-core desync) or the clock stalled.
		// Assume a nanosecond-denominated source rather than storing an
		// unusable zero factor.
		return 1.0
	}

	return float64(endTick-startTick) / float64(elapsed.Nanoseconds())
}

func (c *calibration) ticksPerNs() (float64, error) {
	bits := c.factor.Load()
	if bits == 0 {
		return 0, ErrUncalibrated
	}

	return math.Float64frombits(bits), nil
}

func (c *calibration) tickToNs(ticks uint64) (uint64, error) {
	f, err := c.ticksPerNs()
	if err != nil {
		return 0, err
	}

	return uint64(float64(ticks) / f), nil
}

func (c *calibration) nsToTick(ns uint64) (uint64, error) {
	f, err := c.ticksPerNs()
	if err != nil {
		return 0, err
	}

	return uint64(float64(ns) * f), nil
}

func (c *calibration) elapsedNs(start, end RawTick) (uint64, error) {
	f, err := c.ticksPerNs()
	if err != nil {
		return 0, err
	}

	if end < start {
		// Non-monotonic read across cores. Report an empty span instead of
		// a wrapped 2^64-scale value.
		return 0, nil
	}

	return uint64(float64(end-start) / f), nil
}

// std is the process-wide calibration cell.
var std calibration

// Init calibrates the tick counter against the wall clock. It sleeps for
// roughly 100ms on the first call; subsequent and concurrent calls are
// no-ops that return once the single calibration has completed. All callers
// observe the same factor afterwards.
func Init() {
	std.init(calibrationSleep)
}

// TicksPerNs returns the calibrated ticks-per-nanosecond factor.
func TicksPerNs() (float64, error) {
	return std.ticksPerNs()
}

// TickToNs converts a tick span to nanoseconds.
func TickToNs(ticks uint64) (uint64, error) {
	return std.tickToNs(ticks)
}

// NsToTick converts a nanosecond span to ticks.
func NsToTick(ns uint64) (uint64, error) {
	return std.nsToTick(ns)
}

// ElapsedNs converts the span between two counter readings to nanoseconds.
// A reading pair that went backwards yields 0ns.
func ElapsedNs(start, end RawTick) (uint64, error) {
	return std.elapsedNs(start, end)
}
