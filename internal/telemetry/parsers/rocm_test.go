package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseROCmUse(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    float64
		wantErr error
		anyErr  bool
	}{
		{"string with percent", `{"card0": {"GPU use (%)": "45"}}`, 45, nil, false},
		{"string with suffix", `{"card0": {"GPU use (%)": "87%"}}`, 87, nil, false},
		{"number truncated", `{"card0": {"GPU use (%)": 12.9}}`, 12, nil, false},
		{"missing card", `{"card1": {"GPU use (%)": "45"}}`, 0, ErrNoReading, false},
		{"missing key", `{"card0": {"GFX Activity": "45"}}`, 0, ErrNoReading, false},
		{"not json", `WARNING: No AMD GPUs specified`, 0, nil, true},
		{"garbage value", `{"card0": {"GPU use (%)": "N/A"}}`, 0, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseROCmUse([]byte(tt.output))
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseROCmVRAM(t *testing.T) {
	output := `{"card0": {"VRAM Total Memory (B)": "17163091968", "VRAM Total Used Memory (B)": "2147483648"}}`

	vram, err := ParseROCmVRAM([]byte(output))
	require.NoError(t, err)
	assert.Equal(t, int64(16368), vram.TotalMB)
	assert.Equal(t, int64(2048), vram.UsedMB)
	assert.Equal(t, int64(12), vram.Percent)
}

func TestParseROCmVRAM_Errors(t *testing.T) {
	_, err := ParseROCmVRAM([]byte(`{"card0": {"VRAM Total Memory (B)": "1024"}}`))
	assert.ErrorIs(t, err, ErrNoReading)

	_, err = ParseROCmVRAM([]byte(`{"card0": {"VRAM Total Memory (B)": "0", "VRAM Total Used Memory (B)": "0"}}`))
	assert.Error(t, err)

	_, err = ParseROCmVRAM([]byte(`{"card0": "oops"}`))
	assert.Error(t, err)
}

func TestParseROCmTemp(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   float64
	}{
		{"edge sensor", `{"card0": {"Temperature (Sensor edge) (C)": "52.0", "Temperature (Sensor junction) (C)": "60.0"}}`, 52},
		{"junction fallback", `{"card0": {"Temperature (Sensor junction) (C)": "71.0"}}`, 71},
		{"degree suffix", `{"card0": {"Temperature (Sensor edge) (C)": "48.5°C"}}`, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseROCmTemp([]byte(tt.output))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseROCmTemp([]byte(`{"card0": {"Temperature (Sensor memory) (C)": "80"}}`))
	assert.ErrorIs(t, err, ErrNoReading)
}
