package histogram

import (
	"math"
	"sync/atomic"
)

// paddedUint64 occupies a full 64-byte cache line so that concurrent writers
// of neighboring counters never contend on the same line. Breaking this
// layout keeps the histogram correct but can cost one to two orders of
// magnitude of concurrent throughput.
type paddedUint64 struct {
	n atomic.Uint64
	_ [56]byte
}

// Histogram absorbs concurrently recorded duration samples without ever
// blocking a writer. Record is wait-free apart from the bounded-in-expectation
// min/max retry loop; Snapshot may run at any time.
//
// The 13 bucket counters and the 4 aggregates are independent: no ordering
// links them within one Record call or across threads, so a concurrent
// Snapshot can observe a sample in some counters but not others. Counts are
// exact once all writers have quiesced.
type Histogram struct {
	buckets [NumBuckets]paddedUint64

	count paddedUint64
	sum   paddedUint64
	min   paddedUint64
	max   paddedUint64
}

// New returns a Histogram with all counters at zero.
func New() *Histogram {
	h := &Histogram{}
	h.min.n.Store(math.MaxUint64)

	return h
}

// Record adds one duration sample in nanoseconds. It never fails: zero is
// bucket 0 and anything at or beyond 500us lands in the last bucket. The
// only overflow mode is 64-bit counter wraparound.
func (h *Histogram) Record(durationNs uint64) {
	h.buckets[bucketIndex(durationNs)].n.Add(1)

	h.count.n.Add(1)
	h.sum.n.Add(durationNs)

	// CAS loop for min. On interference at least one competitor succeeded,
	// so the loop is bounded in expectation.
	for {
		oldMin := h.min.n.Load()
		if durationNs >= oldMin {
			break
		}

		if h.min.n.CompareAndSwap(oldMin, durationNs) {
			break
		}
	}

	// CAS loop for max.
	for {
		oldMax := h.max.n.Load()
		if durationNs <= oldMax {
			break
		}

		if h.max.n.CompareAndSwap(oldMax, durationNs) {
			break
		}
	}
}

// Snapshot is a point-in-time view of all 17 counters. The reads are
// independent, not mutually atomic.
type Snapshot struct {
	Buckets [NumBuckets]uint64
	Count   uint64
	SumNs   uint64
	MinNs   uint64
	MaxNs   uint64
}

// Snapshot reads every counter independently. A Record in flight may be
// reflected in some fields but not others; after all writers quiesce the
// snapshot is exact and the bucket counts sum to Count.
func (h *Histogram) Snapshot() Snapshot {
	var s Snapshot

	for i := range h.buckets {
		s.Buckets[i] = h.buckets[i].n.Load()
	}

	s.Count = h.count.n.Load()
	s.SumNs = h.sum.n.Load()
	s.MinNs = h.min.n.Load()
	s.MaxNs = h.max.n.Load()

	// No sample has reached the min counter yet.
	if s.MinNs == math.MaxUint64 {
		s.MinNs = 0
	}

	return s
}
