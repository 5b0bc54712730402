package cli

import (
	"context"
	"io"

	"github.com/rileyhilliard/gpuoverlay/internal/config"
	"github.com/rileyhilliard/gpuoverlay/internal/errors"
	"github.com/rileyhilliard/gpuoverlay/internal/logger"
	"github.com/rileyhilliard/gpuoverlay/internal/source"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
)

// Seams for tests.
var (
	runSMI   source.Runner = source.ExecRunner
	findROCm               = source.FindROCmSMI
)

// feed publishes readings onto a bus until its context is done.
type feed interface {
	Run(ctx context.Context) error
}

// newCollector builds the polling collector for the rocm and nvidia sources.
func newCollector(cfg *config.Config, log logger.Logger) (source.Collector, error) {
	switch cfg.Source {
	case config.SourceROCm:
		path := cfg.SMIPath
		if path == "" {
			path = findROCm()
		}
		if path == "" {
			return nil, errors.New(errors.ErrSource,
				"rocm-smi not found",
				"Install ROCm, pass --smi-path, or use --source nvidia or --source stdin")
		}
		log.Debug("using %s", path)
		return source.NewROCmCollector(path, runSMI, log), nil

	case config.SourceNvidia:
		return source.NewNvidiaCollector(cfg.SMIPath, runSMI), nil
	}

	return nil, errors.New(errors.ErrSource,
		"Source '"+cfg.Source+"' can't be polled",
		"Use --source rocm or --source nvidia")
}

// newFeed builds the configured source, publishing to bus.
func newFeed(cfg *config.Config, bus *telemetry.Bus, stdin io.Reader, log logger.Logger) (feed, error) {
	if cfg.Source == config.SourceStdin {
		return source.NewStreamSource(stdin, bus, cfg.Event, log), nil
	}

	c, err := newCollector(cfg, log)
	if err != nil {
		return nil, err
	}
	return source.NewPoller(c, bus, cfg.Event, cfg.Interval, log), nil
}
