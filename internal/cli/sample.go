package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rileyhilliard/gpuoverlay/internal/config"
	"github.com/rileyhilliard/gpuoverlay/internal/errors"
	"github.com/rileyhilliard/gpuoverlay/internal/logger"
	"github.com/rileyhilliard/gpuoverlay/internal/source"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
	"github.com/spf13/cobra"
)

var sampleJSON bool

// sampleCmd collects once and prints the result
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Collect one reading and print it",
	Long: `Collect one reading from the configured source and print it, without
starting the overlay. Handy for checking that rocm-smi or nvidia-smi works.

Examples:
  gpuoverlay sample
  gpuoverlay sample --source nvidia --json
  echo '{"type":"gpu_monitor","data":{"gpus":[{"gpu_utilization":5}]}}' | gpuoverlay sample --source stdin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return sampleCommand(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), sampleJSON)
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().BoolVar(&sampleJSON, "json", false, "print the event payload as JSON")
}

func sampleCommand(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, asJSON bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := logger.NewEnvLogger("[sample]")

	var (
		payload telemetry.Payload
		err     error
	)
	if cfg.Source == config.SourceStdin {
		payload, err = sampleStream(ctx, cfg, in, log)
	} else {
		payload, err = samplePoll(ctx, cfg, log)
	}
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(telemetry.Envelope{Type: cfg.Event, Data: payload})
	}

	for i, rec := range payload.GPUs {
		if len(payload.GPUs) > 1 {
			fmt.Fprintf(out, "[%d] ", i)
		}
		fmt.Fprintln(out, source.FormatSummary(rec))
	}
	return nil
}

func samplePoll(ctx context.Context, cfg *config.Config, log logger.Logger) (telemetry.Payload, error) {
	c, err := newCollector(cfg, log)
	if err != nil {
		return telemetry.Payload{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, source.CommandTimeout)
	defer cancel()

	records, err := c.Collect(ctx)
	if err != nil {
		return telemetry.Payload{}, err
	}
	return telemetry.Payload{DeviceType: c.DeviceType(), GPUs: records}, nil
}

// sampleStream returns the first event on in that carries at least one GPU.
func sampleStream(ctx context.Context, cfg *config.Config, in io.Reader, log logger.Logger) (telemetry.Payload, error) {
	bus := telemetry.NewBus(telemetry.DefaultBuffer)
	sub := bus.Subscribe(cfg.Event)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- source.NewStreamSource(in, bus, cfg.Event, log).Run(ctx)
		bus.Close()
	}()

	for payload := range sub.C() {
		if len(payload.GPUs) > 0 {
			return payload, nil
		}
	}
	if err := <-done; err != nil {
		return telemetry.Payload{}, err
	}
	return telemetry.Payload{}, errors.New(errors.ErrTelemetry,
		"No "+cfg.Event+" events with GPU readings on stdin",
		"Check the producer writes one JSON envelope per line")
}
