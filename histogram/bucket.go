// Package histogram provides a wait-free concurrent latency histogram over
// a fixed set of 13 logarithmically spaced nanosecond buckets, with an
// approximate percentile estimator and summary reporting.
package histogram

// Bucket upper bounds in nanoseconds. 13 buckets; the last is unbounded.
// This table is a compatibility contract: recorded histories are only
// comparable across versions if it never changes.
const (
	bucket100ns = 100
	bucket200ns = 200
	bucket500ns = 500
	bucket1us   = 1_000
	bucket2us   = 2_000
	bucket5us   = 5_000
	bucket10us  = 10_000
	bucket20us  = 20_000
	bucket50us  = 50_000
	bucket100us = 100_000
	bucket200us = 200_000
	bucket500us = 500_000

	// NumBuckets is the fixed bucket count.
	NumBuckets = 13
)

// midpoints holds the representative value for each bucket, used by the
// percentile estimator. The last entry stands in for the unbounded bucket.
var midpoints = [NumBuckets]uint64{
	50,      // [0, 100ns)
	150,     // [100ns, 200ns)
	350,     // [200ns, 500ns)
	750,     // [500ns, 1us)
	1_500,   // [1us, 2us)
	3_500,   // [2us, 5us)
	7_500,   // [5us, 10us)
	15_000,  // [10us, 20us)
	35_000,  // [20us, 50us)
	75_000,  // [50us, 100us)
	150_000, // [100us, 200us)
	350_000, // [200us, 500us)
	750_000, // [500us, +inf)
}

// bucketIndex returns the bucket index for a duration in nanoseconds.
// Total over all inputs; values at or beyond 500us land in the last bucket.
func bucketIndex(durationNs uint64) int {
	switch {
	case durationNs < bucket100ns:
		return 0
	case durationNs < bucket200ns:
		return 1
	case durationNs < bucket500ns:
		return 2
	case durationNs < bucket1us:
		return 3
	case durationNs < bucket2us:
		return 4
	case durationNs < bucket5us:
		return 5
	case durationNs < bucket10us:
		return 6
	case durationNs < bucket20us:
		return 7
	case durationNs < bucket50us:
		return 8
	case durationNs < bucket100us:
		return 9
	case durationNs < bucket200us:
		return 10
	case durationNs < bucket500us:
		return 11
	default:
		return 12
	}
}

// BucketIndex returns the bucket index for a duration in nanoseconds.
func BucketIndex(durationNs uint64) int {
	return bucketIndex(durationNs)
}

// BucketBoundaries returns the upper bound for each bucket in nanoseconds.
// The last bucket is unbounded, represented as 0.
func BucketBoundaries() [NumBuckets]uint64 {
	return [NumBuckets]uint64{
		bucket100ns,
		bucket200ns,
		bucket500ns,
		bucket1us,
		bucket2us,
		bucket5us,
		bucket10us,
		bucket20us,
		bucket50us,
		bucket100us,
		bucket200us,
		bucket500us,
		0, // +inf
	}
}

// BucketMidpoints returns the representative value for each bucket in
// nanoseconds.
func BucketMidpoints() [NumBuckets]uint64 {
	return midpoints
}
