package source

import (
	"context"
	"errors"
	"fmt"
	"sync"

	ovErrors "github.com/rileyhilliard/gpuoverlay/internal/errors"
	"github.com/rileyhilliard/gpuoverlay/internal/logger"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry/parsers"
)

// Device types reported in payloads.
const (
	DeviceROCm = "rocm"
	DeviceCUDA = "cuda"
)

// Collector reads the current GPU state.
type Collector interface {
	Collect(ctx context.Context) ([]telemetry.Record, error)
	DeviceType() string
}

// ROCmCollector reads card0 through rocm-smi. Each of the three queries
// (use, VRAM, temperature) can fail on its own; the fields it owns then keep
// their last good value.
type ROCmCollector struct {
	path string
	run  Runner
	log  logger.Logger

	mu   sync.Mutex
	last telemetry.Record
}

// NewROCmCollector creates a collector for the rocm-smi binary at path.
func NewROCmCollector(path string, run Runner, log logger.Logger) *ROCmCollector {
	if run == nil {
		run = ExecRunner
	}
	if log == nil {
		log = logger.Noop()
	}
	return &ROCmCollector{path: path, run: run, log: log}
}

// DeviceType implements Collector.
func (c *ROCmCollector) DeviceType() string { return DeviceROCm }

// Collect implements Collector. It errors only when all three queries fail.
func (c *ROCmCollector) Collect(ctx context.Context) ([]telemetry.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if out, err := c.run(ctx, c.path, "--showuse", "--json"); err != nil {
		errs = append(errs, err)
	} else if use, err := parsers.ParseROCmUse(out); err != nil {
		errs = append(errs, err)
	} else {
		c.last.Utilization = telemetry.Number(use)
	}

	if out, err := c.run(ctx, c.path, "--showmeminfo", "vram", "--json"); err != nil {
		errs = append(errs, err)
	} else if vram, err := parsers.ParseROCmVRAM(out); err != nil {
		errs = append(errs, err)
	} else {
		c.last.VRAMUsed = telemetry.Number(vram.UsedMB)
		c.last.VRAMTotal = telemetry.Number(vram.TotalMB)
		c.last.VRAMUsedPercent = telemetry.Number(vram.Percent)
	}

	if out, err := c.run(ctx, c.path, "--showtemp", "--json"); err != nil {
		errs = append(errs, err)
	} else if temp, err := parsers.ParseROCmTemp(out); err != nil {
		errs = append(errs, err)
	} else {
		c.last.Temperature = telemetry.Number(temp)
	}

	for _, err := range errs {
		c.log.Debug("rocm-smi query failed: %v", err)
	}
	if len(errs) == 3 {
		return nil, ovErrors.WrapWithCode(errors.Join(errs...), ovErrors.ErrSource,
			"rocm-smi returned no readings",
			"Run '"+c.path+" --showuse --json' by hand to check the driver")
	}

	return []telemetry.Record{c.last}, nil
}

// NvidiaCollector reads every GPU through nvidia-smi.
type NvidiaCollector struct {
	path string
	run  Runner
}

// NewNvidiaCollector creates a collector for the nvidia-smi binary at path
// ("nvidia-smi" resolves through PATH).
func NewNvidiaCollector(path string, run Runner) *NvidiaCollector {
	if path == "" {
		path = "nvidia-smi"
	}
	if run == nil {
		run = ExecRunner
	}
	return &NvidiaCollector{path: path, run: run}
}

// DeviceType implements Collector.
func (c *NvidiaCollector) DeviceType() string { return DeviceCUDA }

// Collect implements Collector.
func (c *NvidiaCollector) Collect(ctx context.Context) ([]telemetry.Record, error) {
	out, err := c.run(ctx, c.path, parsers.NvidiaQuery...)
	if err != nil {
		return nil, ovErrors.Wrap(err, "nvidia-smi failed")
	}
	records, err := parsers.ParseNvidiaSMI(string(out))
	if err != nil {
		return nil, ovErrors.Wrap(err, "Cannot parse nvidia-smi output")
	}
	if len(records) == 0 {
		return nil, ovErrors.New(ovErrors.ErrSource, "nvidia-smi reported no GPUs",
			"Check that the NVIDIA driver is loaded")
	}
	return records, nil
}

// FormatSummary renders a one-line text summary of a reading.
func FormatSummary(rec telemetry.Record) string {
	return fmt.Sprintf("GPU: %s%% | VRAM: %sMB/%sMB (%s%%) | Temp: %s°C",
		rec.Utilization, rec.VRAMUsed, rec.VRAMTotal, rec.VRAMUsedPercent, rec.Temperature)
}
