package config

import (
	"fmt"
	"net"
	"slices"
	"strings"

	"github.com/rileyhilliard/gpuoverlay/internal/errors"
	"github.com/rileyhilliard/gpuoverlay/internal/source"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if !slices.Contains(Sources, cfg.Source) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown source '%s'", cfg.Source),
			"Use one of: "+strings.Join(Sources, ", "))
	}

	if cfg.Source != SourceStdin {
		if cfg.Interval < source.MinInterval || cfg.Interval > source.MaxInterval {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Interval %s is out of range", cfg.Interval),
				fmt.Sprintf("Use a value between %s and %s", source.MinInterval, source.MaxInterval))
		}
	}

	if strings.TrimSpace(cfg.Event) == "" {
		return errors.New(errors.ErrConfig,
			"Event name can't be empty",
			"Remove 'event' from your config to use the default (gpu_monitor)")
	}

	if cfg.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.MetricsAddr); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid metrics address '%s'", cfg.MetricsAddr),
				"Use host:port, for example 127.0.0.1:9400 or :9400")
		}
	}

	return nil
}
