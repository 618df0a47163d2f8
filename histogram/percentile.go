package histogram

// Percentile estimates the p-th percentile of a snapshot, 0 < p <= 1,
// as a bucket midpoint in nanoseconds.
//
// The target rank is floor(Count × p); the result is the midpoint of the
// first bucket whose cumulative count reaches that rank. An empty snapshot,
// or a p outside (0, 1], yields 0. If the bucket counts never reach the rank
// (possible only when the snapshot raced concurrent writers) the last
// bucket's midpoint is returned.
//
// The midpoint is a deliberate coarse approximation: exact order statistics
// would need unbounded memory and a blocking aggregation structure.
func Percentile(s Snapshot, p float64) uint64 {
	if s.Count == 0 || p <= 0 || p > 1 {
		return 0
	}

	rank := uint64(float64(s.Count) * p)

	var cumulative uint64

	for i := 0; i < NumBuckets; i++ {
		cumulative += s.Buckets[i]
		if cumulative >= rank {
			return midpoints[i]
		}
	}

	// Bucket counts lagged Count in a racing snapshot.
	return midpoints[NumBuckets-1]
}
