// Package meter ties the tick source to a histogram so call sites can time
// spans without handling unit conversion themselves.
package meter

import (
	"github.com/hotloop/hotloop/histogram"
	"github.com/hotloop/hotloop/timing"
)

// Meter records timed spans into a wait-free histogram. Start and the
// histogram write in Stop never block; Stop can only fail before
// timing.Init has completed, because raw ticks cannot be converted to
// nanoseconds until then.
type Meter struct {
	hist *histogram.Histogram
}

// New returns a Meter over a fresh histogram.
func New() *Meter {
	return &Meter{hist: histogram.New()}
}

// Start returns the tick reading that begins a span.
func (m *Meter) Start() timing.RawTick {
	return timing.Now()
}

// Stop ends the span begun at start, records its duration and returns it in
// nanoseconds. Before timing.Init has completed it records nothing and
// returns timing.ErrUncalibrated.
func (m *Meter) Stop(start timing.RawTick) (uint64, error) {
	ns, err := timing.ElapsedNs(start, timing.Now())
	if err != nil {
		return 0, err
	}

	m.hist.Record(ns)

	return ns, nil
}

// RecordNs adds an already-converted nanosecond sample.
func (m *Meter) RecordNs(ns uint64) {
	m.hist.Record(ns)
}

// Histogram exposes the underlying histogram, e.g. for export collectors.
func (m *Meter) Histogram() *histogram.Histogram {
	return m.hist
}

// Snapshot reads the current counters.
func (m *Meter) Snapshot() histogram.Snapshot {
	return m.hist.Snapshot()
}

// Summary digests the current counters for reporting.
func (m *Meter) Summary() histogram.Summary {
	return histogram.Summarize(m.hist.Snapshot())
}
