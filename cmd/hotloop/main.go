package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hotloop/hotloop/histogram"
	"github.com/hotloop/hotloop/internal/runner"
	"github.com/hotloop/hotloop/internal/version"
)

var (
	cfgFile  string
	logLevel string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hotloop",
		Short: "Wait-free latency measurement harness",
		Long: `hotloop times a busy-spin operation from a pool of workers
through the calibrated tick source, recording every sample into a
wait-free histogram, and reports percentile summaries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.Flags().StringVar(
		&cfgFile, "config", "",
		"path to config file (defaults apply if omitted)",
	)
	cmd.Flags().StringVar(
		&logLevel, "log-level", "",
		"override log level (debug, info, warn, error)",
	)

	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.FullWithPlatform())
		},
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg := runner.DefaultConfig()

	if cfgFile != "" {
		loaded, err := runner.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		cfg = loaded
	}

	// CLI flag overrides config file.
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", cfg.LogLevel, err)
	}

	log.SetLevel(level)

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer cancel()

	r, err := runner.New(log, cfg)
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	log.Info("Starting measurement session")

	if err := r.Start(ctx); err != nil {
		return fmt.Errorf("starting runner: %w", err)
	}

	<-ctx.Done()

	if err := r.Stop(); err != nil {
		log.WithError(err).Error("Error during shutdown")
		return fmt.Errorf("stopping runner: %w", err)
	}

	printSummary(r.Summary())

	return nil
}

// printSummary writes the final colored report to stdout.
func printSummary(s histogram.Summary) {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgWhite)
	value := color.New(color.FgGreen)

	header.Println("\n=== Latency Summary ===")

	rows := []struct {
		name string
		ns   uint64
	}{
		{"mean", s.MeanNs},
		{"min", s.MinNs},
		{"max", s.MaxNs},
		{"p50", s.P50Ns},
		{"p95", s.P95Ns},
		{"p99", s.P99Ns},
		{"p99.9", s.P999Ns},
	}

	label.Printf("%-8s ", "samples")
	value.Printf("%d\n", s.Count)

	for _, row := range rows {
		label.Printf("%-8s ", row.name)
		value.Printf("%s\n", time.Duration(row.ns))
	}
}
