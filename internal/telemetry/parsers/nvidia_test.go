package parsers

import (
	"testing"

	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNvidiaSMI(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantNil bool
		want    telemetry.Record
		wantErr bool
	}{
		{
			name:   "valid nvidia-smi output",
			output: "45, 2048, 10240, 65",
			want: telemetry.Record{
				Utilization:     45,
				VRAMUsed:        2048,
				VRAMTotal:       10240,
				VRAMUsedPercent: 20,
				Temperature:     65,
			},
		},
		{
			name:   "whitespace around values",
			output: "  35  ,  4096  ,  8192  ,  58  ",
			want: telemetry.Record{
				Utilization:     35,
				VRAMUsed:        4096,
				VRAMTotal:       8192,
				VRAMUsedPercent: 50,
				Temperature:     58,
			},
		},
		{
			name:   "N/A temperature",
			output: "30, 1024, 16384, [N/A]",
			want: telemetry.Record{
				Utilization:     30,
				VRAMUsed:        1024,
				VRAMTotal:       16384,
				VRAMUsedPercent: 6,
			},
		},
		{name: "empty output - no GPU", output: "", wantNil: true},
		{name: "no devices found", output: "No devices were found", wantNil: true},
		{name: "nvidia-smi not found", output: "nvidia-smi: command not found", wantNil: true},
		{
			name:    "driver error",
			output:  "NVIDIA-SMI has failed because it couldn't communicate with the NVIDIA driver",
			wantNil: true,
		},
		{name: "insufficient fields", output: "45, 2048", wantErr: true},
		{name: "invalid utilization value", output: "invalid, 2048, 10240, 65", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseNvidiaSMI(tt.output)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, records)
				return
			}

			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0])
		})
	}
}

func TestParseNvidiaSMI_MultiGPU(t *testing.T) {
	records, err := ParseNvidiaSMI("10, 100, 1000, 40\n90, 900, 1000, 85\n")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, telemetry.Number(10), records[0].Utilization)
	assert.Equal(t, telemetry.Number(85), records[1].Temperature)
}
