// Package runner drives a self-measurement session: a pool of workers times
// a busy-spin operation through the meter while summaries are reported
// periodically and, optionally, served to Prometheus.
package runner

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hotloop/hotloop/export"
	"github.com/hotloop/hotloop/histogram"
	"github.com/hotloop/hotloop/meter"
	"github.com/hotloop/hotloop/timing"
)

// Runner is the top-level orchestrator for a measurement session.
type Runner interface {
	// Start calibrates timing, launches the workers and begins reporting.
	Start(ctx context.Context) error
	// Stop halts the workers and reporting.
	Stop() error
	// Summary digests the counters recorded so far.
	Summary() histogram.Summary
}

type runner struct {
	log    logrus.FieldLogger
	cfg    *Config
	meter  *meter.Meter
	server *export.Server

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Runner.
func New(log logrus.FieldLogger, cfg *Config) (Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &runner{
		log:   log.WithField("component", "runner"),
		cfg:   cfg,
		meter: meter.New(),
	}

	if cfg.Export.Enabled {
		r.server = export.NewServer(log, cfg.Export)
	}

	return r, nil
}

func (r *runner) Start(ctx context.Context) error {
	ctx, r.cancel = context.WithCancel(ctx)

	// 1. Calibrate the tick source. Sleeps ~100ms on first use.
	timing.Init()

	factor, err := timing.TicksPerNs()
	if err != nil {
		return fmt.Errorf("calibrating timing: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"source":       timing.SourceName(),
		"ticks_per_ns": factor,
	}).Info("Timing calibrated")

	// 2. Start the scrape endpoint, if enabled.
	if r.server != nil {
		if err := r.server.Register(export.NewCollector(
			"hotloop_op_latency_ns",
			"Latency of the measured operation in nanoseconds.",
			r.meter.Histogram(),
		)); err != nil {
			return fmt.Errorf("registering collector: %w", err)
		}

		if err := r.server.Start(ctx); err != nil {
			return fmt.Errorf("starting export server: %w", err)
		}
	}

	// 3. Launch workers.
	for w := 0; w < r.cfg.Workers; w++ {
		r.wg.Add(1)

		go func() {
			defer r.wg.Done()

			r.work(ctx)
		}()
	}

	r.log.WithField("workers", r.cfg.Workers).Info("Workers started")

	// 4. Report periodically and enforce the configured duration.
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()

		r.report(ctx)
	}()

	return nil
}

func (r *runner) Stop() error {
	if r.cancel != nil {
		r.cancel()
	}

	r.wg.Wait()

	if r.server != nil {
		if err := r.server.Stop(); err != nil {
			return fmt.Errorf("stopping export server: %w", err)
		}
	}

	r.log.WithFields(r.Summary().Fields()).Info("Session complete")

	return nil
}

func (r *runner) Summary() histogram.Summary {
	return r.meter.Summary()
}

// work times the busy-spin operation in a tight loop until cancelled.
func (r *runner) work(ctx context.Context) {
	spin := r.cfg.SpinIterations

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		start := r.meter.Start()

		// The operation under measurement: arithmetic the compiler
		// cannot remove.
		acc := uint64(0)
		for i := 0; i < spin; i++ {
			acc += uint64(i) * 2654435761
		}

		spinSink.Store(acc)

		if _, err := r.meter.Stop(start); err != nil {
			// Only possible before Init; Start calibrated already.
			r.log.WithError(err).Error("Recording failed")
			return
		}
	}
}

// spinSink defeats dead-code elimination of the spin loop.
var spinSink atomic.Uint64

// report logs interim summaries until the session ends.
func (r *runner) report(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.ReportInterval)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if r.cfg.Duration > 0 {
		timer := time.NewTimer(r.cfg.Duration)
		defer timer.Stop()

		deadline = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			r.log.Info("Configured duration reached")
			r.cancel()

			return
		case <-ticker.C:
			r.log.WithFields(r.Summary().Fields()).Info("Interim summary")
		}
	}
}
