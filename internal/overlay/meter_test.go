package overlay

import (
	"testing"

	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
	"github.com/stretchr/testify/assert"
)

func TestUtilizationReading(t *testing.T) {
	tests := []struct {
		value    float64
		wantFill float64
		wantText string
		wantTier Tier
	}{
		{0, 0, "0%", TierLow},
		{50, 50, "50%", TierLow},
		{50.5, 50.5, "50.5%", TierMedium},
		{51, 51, "51%", TierMedium},
		{80, 80, "80%", TierMedium},
		{81, 81, "81%", TierHigh},
		{100, 100, "100%", TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.wantText, func(t *testing.T) {
			r := UtilizationReading(telemetry.Record{Utilization: telemetry.Number(tt.value)})
			assert.Equal(t, tt.wantFill, r.Fill)
			assert.Equal(t, tt.wantText, r.Text)
			assert.Equal(t, tt.wantTier, r.Tier)
		})
	}
}

func TestVRAMReading_Tiers(t *testing.T) {
	tests := []struct {
		pct  float64
		want Tier
	}{
		{0, TierLow},
		{70, TierLow},
		{71, TierMedium},
		{85, TierMedium},
		{86, TierHigh},
		{100, TierHigh},
	}

	for _, tt := range tests {
		r := VRAMReading(telemetry.Record{VRAMUsedPercent: telemetry.Number(tt.pct), VRAMTotal: 100})
		assert.Equal(t, tt.want, r.Tier, "vram %v%%", tt.pct)
		assert.Equal(t, tt.pct, r.Fill)
	}
}

func TestTemperatureReading(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		wantFill float64
		wantText string
		wantTier Tier
	}{
		{"cold", 35, 35, "35°C", TierLow},
		{"medium edge", 60, 60, "60°C", TierLow},
		{"medium", 61, 61, "61°C", TierMedium},
		{"high edge", 80, 80, "80°C", TierMedium},
		{"high", 81, 81, "81°C", TierHigh},
		{"above bar range", 105, 100, "105°C", TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := TemperatureReading(telemetry.Record{Temperature: telemetry.Number(tt.temp)})
			assert.Equal(t, tt.wantFill, r.Fill)
			assert.Equal(t, tt.wantText, r.Text)
			assert.Equal(t, tt.wantTier, r.Tier)
		})
	}
}

func TestFill_ClampedToBarRange(t *testing.T) {
	r := UtilizationReading(telemetry.Record{Utilization: 140})
	assert.Equal(t, 100.0, r.Fill)
	assert.Equal(t, "140%", r.Text)

	r = VRAMReading(telemetry.Record{VRAMUsedPercent: -5})
	assert.Equal(t, 0.0, r.Fill)

	r = TemperatureReading(telemetry.Record{Temperature: -10})
	assert.Equal(t, 0.0, r.Fill)
}

func TestFormatVRAM(t *testing.T) {
	tests := []struct {
		name             string
		used, total, pct telemetry.Number
		want             string
	}{
		{"zero", 0, 0, 0, "0MB / 0MB (0%)"},
		{"megabytes", 512, 1000, 51, "512MB / 1000MB (51%)"},
		{"just below GB", 512, 1023, 50, "512MB / 1023MB (50%)"},
		{"exactly 1024 switches to GB", 512, 1024, 50, "0.5GB / 1.0GB (50%)"},
		{"gigabytes", 2048, 8192, 25, "2.0GB / 8.0GB (25%)"},
		{"one decimal", 3000, 16368, 18, "2.9GB / 16.0GB (18%)"},
		{"half rounds up", 1280, 2048, 62, "1.3GB / 2.0GB (62%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatVRAM(tt.used, tt.total, tt.pct))
		})
	}
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "low", TierLow.String())
	assert.Equal(t, "medium", TierMedium.String())
	assert.Equal(t, "high", TierHigh.String())
	assert.Equal(t, "unknown", Tier(9).String())
}

func TestTierColor(t *testing.T) {
	assert.Equal(t, ColorTierLow, TierColor(TierLow))
	assert.Equal(t, ColorTierMed, TierColor(TierMedium))
	assert.Equal(t, ColorTierHigh, TierColor(TierHigh))
}
