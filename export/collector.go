// Package export exposes live histograms to Prometheus scrapes. The core
// library keeps no wire format of its own; this package is the reporting
// collaborator that reads snapshots.
package export

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hotloop/hotloop/histogram"
)

// Collector adapts a live Histogram to a Prometheus histogram metric. Each
// scrape takes one snapshot and emits it as a const histogram with the fixed
// bucket bounds, so scraping never touches the recording hot path beyond the
// snapshot's independent counter loads.
type Collector struct {
	hist *histogram.Histogram
	desc *prometheus.Desc
}

// NewCollector returns a Collector publishing h under the given fully
// qualified metric name.
func NewCollector(name, help string, h *histogram.Histogram) *Collector {
	return &Collector{
		hist: h,
		desc: prometheus.NewDesc(name, help, nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.hist.Snapshot()

	// Prometheus buckets are cumulative counts keyed by upper bound; the
	// unbounded last bucket is implied by the total count.
	bounds := histogram.BucketBoundaries()
	buckets := make(map[float64]uint64, histogram.NumBuckets-1)

	var cumulative uint64

	for i := 0; i < histogram.NumBuckets-1; i++ {
		cumulative += s.Buckets[i]
		buckets[float64(bounds[i])] = cumulative
	}

	ch <- prometheus.MustNewConstHistogram(
		c.desc,
		s.Count,
		float64(s.SumNs),
		buckets,
	)
}
