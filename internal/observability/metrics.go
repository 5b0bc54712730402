// Package observability exports the GPU readings seen on the telemetry bus as
// Prometheus metrics.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
)

// Metrics holds all exported metrics on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	Utilization   *prometheus.GaugeVec
	VRAMUsed      *prometheus.GaugeVec
	VRAMTotal     *prometheus.GaugeVec
	Temperature   *prometheus.GaugeVec
	EventsTotal   prometheus.Counter
	EventsDropped prometheus.Counter
}

// NewMetrics creates a Metrics instance with everything registered.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		Utilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gpuoverlay_gpu_utilization_percent",
			Help: "Most recent GPU utilization reading.",
		}, []string{"gpu"}),
		VRAMUsed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gpuoverlay_vram_used_megabytes",
			Help: "Most recent VRAM used reading in megabytes.",
		}, []string{"gpu"}),
		VRAMTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gpuoverlay_vram_total_megabytes",
			Help: "Most recent VRAM total reading in megabytes.",
		}, []string{"gpu"}),
		Temperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gpuoverlay_gpu_temperature_celsius",
			Help: "Most recent GPU temperature reading.",
		}, []string{"gpu"}),
		EventsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gpuoverlay_events_total",
			Help: "Telemetry events observed.",
		}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gpuoverlay_events_dropped_total",
			Help: "Telemetry events discarded because a subscriber fell behind.",
		}),
	}

	reg.MustRegister(
		m.Utilization,
		m.VRAMUsed,
		m.VRAMTotal,
		m.Temperature,
		m.EventsTotal,
		m.EventsDropped,
	)

	return m
}

// Observe records every GPU in payload, labelled by its index.
func (m *Metrics) Observe(payload telemetry.Payload) {
	m.EventsTotal.Inc()
	for i, rec := range payload.GPUs {
		gpu := strconv.Itoa(i)
		m.Utilization.WithLabelValues(gpu).Set(rec.Utilization.Float())
		m.VRAMUsed.WithLabelValues(gpu).Set(rec.VRAMUsed.Float())
		m.VRAMTotal.WithLabelValues(gpu).Set(rec.VRAMTotal.Float())
		m.Temperature.WithLabelValues(gpu).Set(rec.Temperature.Float())
	}
}

// Dropped counts one discarded event. Its signature fits telemetry.Bus.OnDrop.
func (m *Metrics) Dropped(string) {
	m.EventsDropped.Inc()
}
