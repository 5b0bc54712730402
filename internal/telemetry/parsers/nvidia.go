package parsers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
)

// NvidiaQuery is the nvidia-smi argument list ParseNvidiaSMI expects output from.
var NvidiaQuery = []string{
	"--query-gpu=utilization.gpu,memory.used,memory.total,temperature.gpu",
	"--format=csv,noheader,nounits",
}

// ParseNvidiaSMI parses GPU readings from nvidia-smi CSV output, one GPU per line.
// Expected input is from: nvidia-smi --query-gpu=utilization.gpu,memory.used,memory.total,temperature.gpu --format=csv,noheader,nounits
//
// Returns nil, nil if no GPU is available (empty output or a tool failure message).
// [N/A] fields read as 0.
func ParseNvidiaSMI(output string) ([]telemetry.Record, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil, nil
	}

	lowerOutput := strings.ToLower(output)
	if strings.Contains(lowerOutput, "no devices") ||
		strings.Contains(lowerOutput, "not found") ||
		strings.Contains(lowerOutput, "failed") ||
		strings.Contains(lowerOutput, "error") {
		return nil, nil
	}

	var records []telemetry.Record
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rec, err := parseNvidiaLine(line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Example line: "45, 2048, 10240, 65"
func parseNvidiaLine(line string) (telemetry.Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return telemetry.Record{}, fmt.Errorf("nvidia-smi output has insufficient fields: expected 4, got %d", len(fields))
	}

	names := []string{"GPU utilization", "memory used", "memory total", "temperature"}
	values := make([]float64, 4)
	for i := range values {
		s := strings.TrimSpace(fields[i])
		if s == "" || s == "[N/A]" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return telemetry.Record{}, fmt.Errorf("failed to parse %s '%s': %w", names[i], s, err)
		}
		values[i] = v
	}

	util, used, total, temp := values[0], values[1], values[2], values[3]
	var pct float64
	if total > 0 {
		pct = float64(int64(used / total * 100))
	}

	return telemetry.Record{
		Utilization:     telemetry.Number(util),
		VRAMUsed:        telemetry.Number(used),
		VRAMTotal:       telemetry.Number(total),
		VRAMUsedPercent: telemetry.Number(pct),
		Temperature:     telemetry.Number(temp),
	}, nil
}
