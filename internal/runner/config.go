package runner

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hotloop/hotloop/export"
)

// Config is the top-level configuration for the hotloop runner.
type Config struct {
	// LogLevel sets the logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// Workers is the number of goroutines recording concurrently.
	Workers int `yaml:"workers"`

	// Duration is how long the measurement runs. Zero means run until
	// interrupted.
	Duration time.Duration `yaml:"duration"`

	// SpinIterations sizes the busy-spin operation each worker times.
	// Defaults to 1000.
	SpinIterations int `yaml:"spin_iterations"`

	// ReportInterval is how often interim summaries are logged.
	// Defaults to 5s.
	ReportInterval time.Duration `yaml:"report_interval"`

	// Export configures the Prometheus scrape endpoint.
	Export export.Config `yaml:"export"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		Workers:        4,
		SpinIterations: 1000,
		ReportInterval: 5 * time.Second,
		Export: export.Config{
			Addr: ":9090",
		},
	}
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}

	if c.SpinIterations <= 0 {
		return fmt.Errorf("spin_iterations must be > 0, got %d", c.SpinIterations)
	}

	if c.ReportInterval <= 0 {
		return fmt.Errorf("report_interval must be > 0, got %s", c.ReportInterval)
	}

	if c.Duration < 0 {
		return fmt.Errorf("duration must be >= 0, got %s", c.Duration)
	}

	return nil
}
