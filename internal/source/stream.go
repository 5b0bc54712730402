package source

import (
	"bufio"
	"context"
	"io"

	"github.com/rileyhilliard/gpuoverlay/internal/errors"
	"github.com/rileyhilliard/gpuoverlay/internal/logger"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
)

// maxLineSize caps a single JSON-lines envelope.
const maxLineSize = 1 << 20

// StreamSource republishes envelopes read line by line from r.
// Example line:
//
//	{"type":"gpu_monitor","data":{"gpus":[{"gpu_utilization":45}]}}
type StreamSource struct {
	r     io.Reader
	bus   *telemetry.Bus
	event string
	log   logger.Logger
}

// NewStreamSource creates a source that forwards envelopes whose type is event.
func NewStreamSource(r io.Reader, bus *telemetry.Bus, event string, log logger.Logger) *StreamSource {
	if event == "" {
		event = telemetry.DefaultEvent
	}
	if log == nil {
		log = logger.Noop()
	}
	return &StreamSource{r: r, bus: bus, event: event, log: log}
}

// Run reads until EOF or ctx is done. Lines that aren't valid envelopes are
// logged and skipped; envelopes for other event names are ignored.
func (s *StreamSource) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		lineNo++

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		env, err := telemetry.DecodeEnvelope(line)
		if err != nil {
			s.log.Warn("skipping line %d: %v", lineNo, err)
			continue
		}
		if env.Type != s.event {
			s.log.Debug("ignoring %q event on line %d", env.Type, lineNo)
			continue
		}
		s.bus.Publish(s.event, env.Data)
	}

	if err := scanner.Err(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTelemetry,
			"Telemetry stream read failed",
			"Check the process writing events to stdin")
	}
	s.log.Debug("telemetry stream closed after %d lines", lineNo)
	return nil
}
