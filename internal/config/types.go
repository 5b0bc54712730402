package config

import (
	"time"

	"github.com/rileyhilliard/gpuoverlay/internal/source"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
)

// Telemetry sources.
const (
	SourceROCm   = "rocm"
	SourceNvidia = "nvidia"
	SourceStdin  = "stdin"
)

// Sources lists every accepted value for Config.Source.
var Sources = []string{SourceROCm, SourceNvidia, SourceStdin}

// Config is the gpuoverlay configuration, merged from defaults, the config
// file, GPUOVERLAY_* environment variables and command-line flags.
type Config struct {
	// Source selects where readings come from.
	Source string `yaml:"source" mapstructure:"source"`

	// Interval is the polling period for the rocm and nvidia sources.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// SMIPath overrides the rocm-smi or nvidia-smi executable.
	SMIPath string `yaml:"smi_path" mapstructure:"smi_path"`

	// Event is the event name readings are published and subscribed under.
	Event string `yaml:"event" mapstructure:"event"`

	// PrefsFile is where the overlay remembers its position and closed state.
	// Empty uses the default location under the user config directory.
	PrefsFile string `yaml:"prefs_file" mapstructure:"prefs_file"`

	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string `yaml:"metrics_addr" mapstructure:"metrics_addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Source:   SourceROCm,
		Interval: source.DefaultInterval,
		Event:    telemetry.DefaultEvent,
	}
}
