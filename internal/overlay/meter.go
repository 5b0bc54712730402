package overlay

import (
	"fmt"
	"math"

	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
)

// Tier is a meter's colour band.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// String returns a lowercase tier name.
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Thresholds are the cut points of a meter. A value strictly above High is
// TierHigh, strictly above Medium is TierMedium.
type Thresholds struct {
	Medium float64
	High   float64
}

// Tier classifies v.
func (th Thresholds) Tier(v float64) Tier {
	switch {
	case v > th.High:
		return TierHigh
	case v > th.Medium:
		return TierMedium
	default:
		return TierLow
	}
}

// Per-meter thresholds.
var (
	UtilizationThresholds = Thresholds{Medium: 50, High: 80}
	VRAMThresholds        = Thresholds{Medium: 70, High: 85}
	TemperatureThresholds = Thresholds{Medium: 60, High: 80}
)

// gbThresholdMB is the VRAM total at which text switches from MB to GB.
const gbThresholdMB = 1024

// Reading is what one meter shows.
type Reading struct {
	Fill float64 // bar fill in percent, always within [0,100]
	Text string
	Tier Tier
}

// Readings holds all three meters.
type Readings struct {
	Utilization Reading
	VRAM        Reading
	Temperature Reading
}

// ReadingsFor computes every meter from one GPU record.
func ReadingsFor(rec telemetry.Record) Readings {
	return Readings{
		Utilization: UtilizationReading(rec),
		VRAM:        VRAMReading(rec),
		Temperature: TemperatureReading(rec),
	}
}

// UtilizationReading renders gpu_utilization as "45%".
func UtilizationReading(rec telemetry.Record) Reading {
	v := rec.Utilization.Float()
	return Reading{
		Fill: clampPercent(v),
		Text: rec.Utilization.String() + "%",
		Tier: UtilizationThresholds.Tier(v),
	}
}

// VRAMReading fills by vram_used_percent and renders used/total memory.
func VRAMReading(rec telemetry.Record) Reading {
	pct := rec.VRAMUsedPercent.Float()
	return Reading{
		Fill: clampPercent(pct),
		Text: FormatVRAM(rec.VRAMUsed, rec.VRAMTotal, rec.VRAMUsedPercent),
		Tier: VRAMThresholds.Tier(pct),
	}
}

// TemperatureReading renders the raw temperature; the bar treats 100°C as full.
func TemperatureReading(rec telemetry.Record) Reading {
	v := rec.Temperature.Float()
	return Reading{
		Fill: clampPercent(math.Min(v, 100)),
		Text: rec.Temperature.String() + "°C",
		Tier: TemperatureThresholds.Tier(v),
	}
}

// FormatVRAM renders "512MB / 1000MB (51%)", or "2.0GB / 8.0GB (25%)" once the
// total reaches 1024 MB.
func FormatVRAM(used, total, percent telemetry.Number) string {
	if total.Float() >= gbThresholdMB {
		return fmt.Sprintf("%.1fGB / %.1fGB (%s%%)",
			roundTenth(used.Float()/1024), roundTenth(total.Float()/1024), percent)
	}
	return fmt.Sprintf("%sMB / %sMB (%s%%)", used, total, percent)
}

// roundTenth rounds half away from zero to one decimal.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
