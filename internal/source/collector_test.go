package source

import (
	"context"
	"fmt"
	"strings"
	"testing"

	ovErrors "github.com/rileyhilliard/gpuoverlay/internal/errors"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner answers by the first argument (e.g. "--showuse").
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	key := ""
	if len(args) > 0 {
		key = args[0]
	}
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	return []byte(f.outputs[key]), nil
}

const (
	rocmUse  = `{"card0": {"GPU use (%)": "45"}}`
	rocmVRAM = `{"card0": {"VRAM Total Memory (B)": "8589934592", "VRAM Total Used Memory (B)": "2147483648"}}`
	rocmTemp = `{"card0": {"Temperature (Sensor edge) (C)": "60.0"}}`
)

func TestROCmCollector_Collect(t *testing.T) {
	fr := &fakeRunner{outputs: map[string]string{
		"--showuse":     rocmUse,
		"--showmeminfo": rocmVRAM,
		"--showtemp":    rocmTemp,
	}}
	c := NewROCmCollector("/opt/rocm/bin/rocm-smi", fr.run, nil)

	records, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, telemetry.Record{
		Utilization:     45,
		VRAMUsed:        2048,
		VRAMTotal:       8192,
		VRAMUsedPercent: 25,
		Temperature:     60,
	}, records[0])
	assert.Equal(t, DeviceROCm, c.DeviceType())

	assert.Equal(t, []string{
		"/opt/rocm/bin/rocm-smi --showuse --json",
		"/opt/rocm/bin/rocm-smi --showmeminfo vram --json",
		"/opt/rocm/bin/rocm-smi --showtemp --json",
	}, fr.calls)
}

func TestROCmCollector_PartialFailureKeepsLastValues(t *testing.T) {
	fr := &fakeRunner{outputs: map[string]string{
		"--showuse":     rocmUse,
		"--showmeminfo": rocmVRAM,
		"--showtemp":    rocmTemp,
	}}
	c := NewROCmCollector("rocm-smi", fr.run, nil)
	_, err := c.Collect(context.Background())
	require.NoError(t, err)

	fr.outputs["--showuse"] = `{"card0": {"GPU use (%)": "90"}}`
	fr.errs = map[string]error{"--showtemp": fmt.Errorf("timeout")}
	fr.outputs["--showmeminfo"] = `not json`

	records, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, telemetry.Number(90), records[0].Utilization)
	assert.Equal(t, telemetry.Number(2048), records[0].VRAMUsed, "VRAM keeps last good value")
	assert.Equal(t, telemetry.Number(60), records[0].Temperature, "temperature keeps last good value")
}

func TestROCmCollector_AllFail(t *testing.T) {
	boom := fmt.Errorf("exit status 1")
	fr := &fakeRunner{errs: map[string]error{
		"--showuse":     boom,
		"--showmeminfo": boom,
		"--showtemp":    boom,
	}}
	c := NewROCmCollector("rocm-smi", fr.run, nil)

	_, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.True(t, ovErrors.IsCode(err, ovErrors.ErrSource))
}

func TestNvidiaCollector_Collect(t *testing.T) {
	fr := &fakeRunner{outputs: map[string]string{
		"--query-gpu=utilization.gpu,memory.used,memory.total,temperature.gpu": "45, 2048, 10240, 65\n",
	}}
	c := NewNvidiaCollector("", fr.run)

	records, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, telemetry.Number(20), records[0].VRAMUsedPercent)
	assert.Equal(t, DeviceCUDA, c.DeviceType())
	assert.True(t, strings.HasPrefix(fr.calls[0], "nvidia-smi "))
}

func TestNvidiaCollector_NoGPU(t *testing.T) {
	fr := &fakeRunner{outputs: map[string]string{}}
	c := NewNvidiaCollector("nvidia-smi", fr.run)

	_, err := c.Collect(context.Background())
	assert.True(t, ovErrors.IsCode(err, ovErrors.ErrSource))
}

func TestFormatSummary(t *testing.T) {
	rec := telemetry.Record{
		Utilization:     45,
		VRAMUsed:        2048,
		VRAMTotal:       8192,
		VRAMUsedPercent: 25,
		Temperature:     60,
	}
	assert.Equal(t, "GPU: 45% | VRAM: 2048MB/8192MB (25%) | Temp: 60°C", FormatSummary(rec))
}
