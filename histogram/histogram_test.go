package histogram

import (
	"math/rand"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptySnapshot(t *testing.T) {
	h := New()
	s := h.Snapshot()

	assert.Zero(t, s.Count)
	assert.Zero(t, s.SumNs)
	assert.Zero(t, s.MinNs)
	assert.Zero(t, s.MaxNs)

	for i, b := range s.Buckets {
		assert.Zero(t, b, "bucket %d", i)
	}
}

func TestSequentialAggregates(t *testing.T) {
	h := New()

	samples := []uint64{750, 50, 3_000, 50_000, 150}

	var sum uint64
	for _, v := range samples {
		h.Record(v)
		sum += v
	}

	s := h.Snapshot()

	assert.Equal(t, uint64(len(samples)), s.Count)
	assert.Equal(t, sum, s.SumNs)
	assert.Equal(t, uint64(50), s.MinNs)
	assert.Equal(t, uint64(50_000), s.MaxNs)
}

func TestRecordRoutesToBuckets(t *testing.T) {
	h := New()

	h.Record(0)              // bucket 0
	h.Record(99)             // bucket 0
	h.Record(100)            // bucket 1
	h.Record(500_000)        // bucket 12
	h.Record(90_000_000_000) // far beyond the table, still bucket 12

	s := h.Snapshot()

	assert.Equal(t, uint64(2), s.Buckets[0])
	assert.Equal(t, uint64(1), s.Buckets[1])
	assert.Equal(t, uint64(2), s.Buckets[12])
}

func TestBucketCountsSumToCount(t *testing.T) {
	h := New()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10_000; i++ {
		h.Record(uint64(rng.Intn(2_000_000)))
	}

	s := h.Snapshot()

	var total uint64
	for _, b := range s.Buckets {
		total += b
	}

	assert.Equal(t, s.Count, total)
	assert.Equal(t, uint64(10_000), s.Count)
}

func TestConcurrentFixedValue(t *testing.T) {
	h := New()

	const (
		writers = 8
		perW    = 10_000
		value   = uint64(7_500) // bucket 6
	)

	var wg sync.WaitGroup

	for w := 0; w < writers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < perW; i++ {
				h.Record(value)
			}
		}()
	}

	wg.Wait()

	s := h.Snapshot()

	assert.Equal(t, uint64(writers*perW), s.Count)
	assert.Equal(t, uint64(writers*perW), s.Buckets[6])
	assert.Equal(t, value, s.MinNs)
	assert.Equal(t, value, s.MaxNs)
	assert.Equal(t, uint64(writers*perW)*value, s.SumNs)
}

func TestConcurrentMixedValues(t *testing.T) {
	h := New()

	const writers = 8

	var wg sync.WaitGroup

	for w := 0; w < writers; w++ {
		wg.Add(1)

		go func(seed int64) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < 5_000; i++ {
				h.Record(uint64(rng.Intn(600_000)) + 1)
			}
		}(int64(w))
	}

	wg.Wait()

	s := h.Snapshot()

	require.Equal(t, uint64(writers*5_000), s.Count)

	var total uint64
	for _, b := range s.Buckets {
		total += b
	}

	assert.Equal(t, s.Count, total, "quiesced bucket counts sum to count")
	assert.GreaterOrEqual(t, s.MaxNs, s.MinNs)
	assert.Greater(t, s.MinNs, uint64(0))
}

func TestSnapshotWhileRecording(t *testing.T) {
	h := New()

	stop := make(chan struct{})

	var wg sync.WaitGroup

	for w := 0; w < 4; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				select {
				case <-stop:
					return
				default:
					h.Record(1_500)
				}
			}
		}()
	}

	// Concurrent snapshots must be internally plausible even mid-write:
	// bucket totals never exceed the in-flight window above Count.
	for i := 0; i < 100; i++ {
		s := h.Snapshot()

		var total uint64
		for _, b := range s.Buckets {
			total += b
		}

		// Each of the 4 writers can have at most one update in flight
		// between its bucket increment and its count increment.
		assert.LessOrEqual(t, total, s.Count+4)
	}

	close(stop)
	wg.Wait()
}

func TestCounterCacheLineIsolation(t *testing.T) {
	// Layout invariant: every counter sits in its own 64-byte region.
	assert.Equal(t, uintptr(64), unsafe.Sizeof(paddedUint64{}))

	var h Histogram

	base := unsafe.Pointer(&h)
	for i := 1; i < NumBuckets; i++ {
		delta := uintptr(unsafe.Pointer(&h.buckets[i])) - uintptr(base)
		assert.Equal(t, uintptr(i*64), delta, "bucket %d offset", i)
	}
}
