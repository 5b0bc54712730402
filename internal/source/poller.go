package source

import (
	"context"
	"time"

	"github.com/rileyhilliard/gpuoverlay/internal/logger"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
)

// Interval limits for polling.
const (
	MinInterval     = 100 * time.Millisecond
	MaxInterval     = 10 * time.Second
	DefaultInterval = time.Second
)

// Poller publishes a payload from its collector every interval.
type Poller struct {
	collector Collector
	bus       *telemetry.Bus
	event     string
	interval  time.Duration
	log       logger.Logger
}

// NewPoller creates a poller. interval is clamped to [MinInterval, MaxInterval];
// zero means DefaultInterval.
func NewPoller(c Collector, bus *telemetry.Bus, event string, interval time.Duration, log logger.Logger) *Poller {
	if interval == 0 {
		interval = DefaultInterval
	}
	if interval < MinInterval {
		interval = MinInterval
	}
	if interval > MaxInterval {
		interval = MaxInterval
	}
	if event == "" {
		event = telemetry.DefaultEvent
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Poller{
		collector: c,
		bus:       bus,
		event:     event,
		interval:  interval,
		log:       log,
	}
}

// Interval returns the effective polling interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run polls until ctx is done. The first collection happens immediately.
// Collection errors are logged and the tick is skipped.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.pollOnce(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) {
	records, err := p.collector.Collect(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn("collect: %v", err)
		}
		return
	}
	p.bus.Publish(p.event, telemetry.Payload{
		DeviceType: p.collector.DeviceType(),
		GPUs:       records,
	})
}
