package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketIndexBoundaries(t *testing.T) {
	cases := []struct {
		ns   uint64
		want int
	}{
		{0, 0},
		{50, 0},
		{99, 0},
		{100, 1},
		{199, 1},
		{200, 2},
		{499, 2},
		{500, 3},
		{999, 3},
		{1_000, 4},
		{1_999, 4},
		{2_000, 5},
		{4_999, 5},
		{5_000, 6},
		{9_999, 6},
		{10_000, 7},
		{19_999, 7},
		{20_000, 8},
		{49_999, 8},
		{50_000, 9},
		{99_999, 9},
		{100_000, 10},
		{199_999, 10},
		{200_000, 11},
		{499_999, 11},
		{500_000, 12},
		{1_000_000_000, 12},
		{^uint64(0), 12},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, BucketIndex(tc.ns), "bucket for %dns", tc.ns)
	}
}

func TestBucketIndexMonotonic(t *testing.T) {
	prev := BucketIndex(0)

	for ns := uint64(1); ns <= 600_000; ns++ {
		idx := BucketIndex(ns)
		require.GreaterOrEqual(t, idx, prev, "at %dns", ns)
		prev = idx
	}
}

func TestBucketBoundariesStrictlyIncreasing(t *testing.T) {
	bounds := BucketBoundaries()

	// All but the unbounded last entry.
	for i := 1; i < NumBuckets-1; i++ {
		assert.Greater(t, bounds[i], bounds[i-1])
	}

	assert.Zero(t, bounds[NumBuckets-1], "last bucket is unbounded")
}

func TestBucketMidpointsContract(t *testing.T) {
	// Fixed table; changing it breaks comparability of recorded histories.
	want := [NumBuckets]uint64{
		50, 150, 350, 750,
		1_500, 3_500, 7_500, 15_000, 35_000, 75_000,
		150_000, 350_000, 750_000,
	}

	assert.Equal(t, want, BucketMidpoints())
}

func TestMidpointsFallInsideBuckets(t *testing.T) {
	for i, mid := range BucketMidpoints() {
		assert.Equal(t, i, BucketIndex(mid), "midpoint %dns", mid)
	}
}
