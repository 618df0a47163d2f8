package histogram

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Summary is the reporter-facing digest of a snapshot: aggregates plus the
// standard percentile set. Percentile values are bucket midpoints.
type Summary struct {
	Count  uint64
	MeanNs uint64
	MinNs  uint64
	MaxNs  uint64
	P50Ns  uint64
	P95Ns  uint64
	P99Ns  uint64
	P999Ns uint64
}

// Summarize computes a Summary from a snapshot.
func Summarize(s Snapshot) Summary {
	var mean uint64
	if s.Count > 0 {
		mean = s.SumNs / s.Count
	}

	return Summary{
		Count:  s.Count,
		MeanNs: mean,
		MinNs:  s.MinNs,
		MaxNs:  s.MaxNs,
		P50Ns:  Percentile(s, 0.50),
		P95Ns:  Percentile(s, 0.95),
		P99Ns:  Percentile(s, 0.99),
		P999Ns: Percentile(s, 0.999),
	}
}

// String formats the summary on one line with duration-style units.
func (s Summary) String() string {
	return fmt.Sprintf(
		"count=%d mean=%s min=%s max=%s p50=%s p95=%s p99=%s p99.9=%s",
		s.Count,
		time.Duration(s.MeanNs),
		time.Duration(s.MinNs),
		time.Duration(s.MaxNs),
		time.Duration(s.P50Ns),
		time.Duration(s.P95Ns),
		time.Duration(s.P99Ns),
		time.Duration(s.P999Ns),
	)
}

// Fields returns the summary as structured logging fields.
func (s Summary) Fields() logrus.Fields {
	return logrus.Fields{
		"count":   s.Count,
		"mean_ns": s.MeanNs,
		"min_ns":  s.MinNs,
		"max_ns":  s.MaxNs,
		"p50_ns":  s.P50Ns,
		"p95_ns":  s.P95Ns,
		"p99_ns":  s.P99Ns,
		"p999_ns": s.P999Ns,
	}
}
