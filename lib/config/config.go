// Package config loads and saves scratchpool configuration files.
// TOML and YAML are both accepted; the format follows the file extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	apperrors "github.com/go-i2p/scratchpool/lib/errors"
	"github.com/go-i2p/scratchpool/lib/registry"
	"github.com/go-i2p/scratchpool/lib/validation"
	"github.com/go-i2p/scratchpool/lib/workload"
)

// Default configuration values
const (
	DefaultLogLevel          = "info"
	DefaultLogMaxSizeMB      = 10
	DefaultLogMaxBackups     = 3
	DefaultLogMaxAgeDays     = 28
	DefaultMetricsListen     = "127.0.0.1:9464"
	DefaultMetricsPath       = "/metrics"
	DefaultTelemetryInterval = "15s"
	DefaultServiceName       = "scratchpool"
)

// LogLevels lists the accepted log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML.
var ErrUnsupportedFormat = fmt.Errorf("config: file format %w", apperrors.ErrUnsupported)

// Config holds all configuration for scratchpool.
type Config struct {
	Pools     registry.Config `toml:"pools" yaml:"pools"`
	Log       LogConfig       `toml:"log" yaml:"log"`
	Metrics   MetricsConfig   `toml:"metrics" yaml:"metrics"`
	Telemetry TelemetryConfig `toml:"telemetry" yaml:"telemetry"`
	Workload  workload.Config `toml:"workload" yaml:"workload"`
}

// LogConfig controls command-line logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// File, when set, receives JSON logs with size-based rotation.
	File string `toml:"file,omitempty" yaml:"file,omitempty"`
	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int `toml:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of rotated files kept.
	MaxBackups int `toml:"max_backups" yaml:"max_backups"`
	// MaxAgeDays is the number of days rotated files are kept.
	MaxAgeDays int `toml:"max_age_days" yaml:"max_age_days"`
}

// MetricsConfig controls the Prometheus-format HTTP endpoint.
type MetricsConfig struct {
	// Enabled controls whether the endpoint is served
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// Listen is the address to listen on
	Listen string `toml:"listen" yaml:"listen"`
	// Path is the URL path metrics are served at
	Path string `toml:"path" yaml:"path"`
}

// TelemetryConfig controls OpenTelemetry metric export.
type TelemetryConfig struct {
	// Endpoint is the OTLP/HTTP collector address (host:port).
	// Empty disables export.
	Endpoint string `toml:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	// Insecure disables TLS towards the collector.
	Insecure bool `toml:"insecure" yaml:"insecure"`
	// Interval is the export period as a duration string.
	Interval string `toml:"interval" yaml:"interval"`
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `toml:"service_name" yaml:"service_name"`
}

// ExportInterval returns the parsed export interval, falling back to the default.
func (t TelemetryConfig) ExportInterval() time.Duration {
	d, err := validation.Duration("telemetry.interval", t.Interval)
	if err != nil || d == 0 {
		d, _ = time.ParseDuration(DefaultTelemetryInterval)
	}
	return d
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Pools: registry.DefaultConfig(),
		Log: LogConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Listen:  DefaultMetricsListen,
			Path:    DefaultMetricsPath,
		},
		Telemetry: TelemetryConfig{
			Interval:    DefaultTelemetryInterval,
			ServiceName: DefaultServiceName,
		},
		Workload: workload.DefaultConfig(),
	}
}

type format int

const (
	formatTOML format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadConfig reads configuration from a TOML or YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Debug("config file not found, using defaults")
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	switch f {
	case formatYAML:
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log.WithField("path", path).Debug("loaded config")
	return cfg, nil
}

// SaveConfig writes the configuration in the format implied by path.
// It creates the parent directory if it doesn't exist.
func SaveConfig(cfg *Config, path string) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := cfg.Marshal(f == formatYAML)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Marshal encodes the configuration as TOML, or YAML when asYAML is set.
func (c *Config) Marshal(asYAML bool) ([]byte, error) {
	if asYAML {
		return yaml.Marshal(c)
	}
	return toml.Marshal(c)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs validation.Errors
	if err := c.Pools.Validate(); err != nil {
		errs.Add(fmt.Errorf("pools: %w", err))
	}

	errs.Add(validation.OneOf("log.level", c.Log.Level, LogLevels...))
	errs.Add(validation.NonNegative("log.max_size_mb", c.Log.MaxSizeMB))
	errs.Add(validation.NonNegative("log.max_backups", c.Log.MaxBackups))
	errs.Add(validation.NonNegative("log.max_age_days", c.Log.MaxAgeDays))

	if c.Metrics.Enabled {
		errs.Add(validation.HostPort("metrics.listen", c.Metrics.Listen))
		if !strings.HasPrefix(c.Metrics.Path, "/") {
			errs.Add(validation.NewResult("metrics.path", "must start with /", validation.ErrInvalidFormat))
		}
	}

	if c.Telemetry.Endpoint != "" {
		errs.Add(validation.HostPort("telemetry.endpoint", c.Telemetry.Endpoint))
		errs.Add(validation.Required("telemetry.service_name", c.Telemetry.ServiceName))
	}
	if _, err := validation.Duration("telemetry.interval", c.Telemetry.Interval); err != nil {
		errs.Add(err)
	}

	if err := c.Workload.Validate(); err != nil {
		errs.Add(fmt.Errorf("workload: %w", err))
	}

	if err := errs.Err(); err != nil {
		return apperrors.Describe("config", fmt.Errorf("%w: %w", apperrors.ErrConfiguration, err))
	}
	return nil
}
