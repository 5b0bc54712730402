package observability

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, vec *prometheus.GaugeVec, gpu string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, vec.WithLabelValues(gpu).Write(&m))
	return m.GetGauge().GetValue()
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestNewMetrics_CustomRegistry(t *testing.T) {
	m := NewMetrics()

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	// Only the counters have samples before any observation.
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["gpuoverlay_events_total"])

	defaultFamilies, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, f := range defaultFamilies {
		assert.NotEqual(t, "gpuoverlay_events_total", f.GetName())
	}
}

func TestObserve_AllGPUs(t *testing.T) {
	m := NewMetrics()
	m.Observe(telemetry.Payload{GPUs: []telemetry.Record{
		{Utilization: 45, VRAMUsed: 2048, VRAMTotal: 8192, Temperature: 60},
		{Utilization: 90, VRAMUsed: 100, VRAMTotal: 200, Temperature: 85},
	}})

	assert.Equal(t, 45.0, gaugeValue(t, m.Utilization, "0"))
	assert.Equal(t, 90.0, gaugeValue(t, m.Utilization, "1"))
	assert.Equal(t, 2048.0, gaugeValue(t, m.VRAMUsed, "0"))
	assert.Equal(t, 200.0, gaugeValue(t, m.VRAMTotal, "1"))
	assert.Equal(t, 85.0, gaugeValue(t, m.Temperature, "1"))
	assert.Equal(t, 1.0, counterValue(t, m.EventsTotal))
}

func TestDropped(t *testing.T) {
	m := NewMetrics()
	m.Dropped(telemetry.DefaultEvent)
	m.Dropped(telemetry.DefaultEvent)
	assert.Equal(t, 2.0, counterValue(t, m.EventsDropped))
}

func TestServer_ServesMetrics(t *testing.T) {
	m := NewMetrics()
	m.Observe(telemetry.Payload{GPUs: []telemetry.Record{{Utilization: 33}}})

	srv := NewServer("127.0.0.1:0", m, nil)
	require.NoError(t, srv.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	}()

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `gpuoverlay_gpu_utilization_percent{gpu="0"} 33`)
}
