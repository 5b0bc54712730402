package parsers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNoReading means the tool answered but the expected card or key was absent.
var ErrNoReading = errors.New("no reading for card0")

// rocm-smi JSON keys.
const (
	rocmCard          = "card0"
	rocmUseKey        = "GPU use (%)"
	rocmVRAMTotalKey  = "VRAM Total Memory (B)"
	rocmVRAMUsedKey   = "VRAM Total Used Memory (B)"
	rocmTempEdgeKey   = "Temperature (Sensor edge) (C)"
	rocmTempJunctKey  = "Temperature (Sensor junction) (C)"
	bytesPerMegabyte  = 1024 * 1024
	percentMultiplier = 100
)

// VRAM holds a memory reading in whole megabytes.
type VRAM struct {
	UsedMB  int64
	TotalMB int64
	Percent int64
}

// ParseROCmUse parses the output of: rocm-smi --showuse --json
// The value is truncated to a whole percent.
func ParseROCmUse(output []byte) (float64, error) {
	card, err := firstCard(output)
	if err != nil {
		return 0, err
	}
	raw, ok := card[rocmUseKey]
	if !ok {
		return 0, ErrNoReading
	}
	v, err := cardValue(raw, "%")
	if err != nil {
		return 0, fmt.Errorf("failed to parse GPU use: %w", err)
	}
	return math.Trunc(v), nil
}

// ParseROCmVRAM parses the output of: rocm-smi --showmeminfo vram --json
// Byte counts are converted to whole megabytes.
func ParseROCmVRAM(output []byte) (VRAM, error) {
	card, err := firstCard(output)
	if err != nil {
		return VRAM{}, err
	}
	rawTotal, okTotal := card[rocmVRAMTotalKey]
	rawUsed, okUsed := card[rocmVRAMUsedKey]
	if !okTotal || !okUsed {
		return VRAM{}, ErrNoReading
	}

	totalBytes, err := cardValue(rawTotal)
	if err != nil {
		return VRAM{}, fmt.Errorf("failed to parse VRAM total: %w", err)
	}
	usedBytes, err := cardValue(rawUsed)
	if err != nil {
		return VRAM{}, fmt.Errorf("failed to parse VRAM used: %w", err)
	}
	if totalBytes <= 0 {
		return VRAM{}, fmt.Errorf("VRAM total is %v bytes", totalBytes)
	}

	total := totalBytes / bytesPerMegabyte
	used := usedBytes / bytesPerMegabyte
	return VRAM{
		UsedMB:  int64(used),
		TotalMB: int64(total),
		Percent: int64(usedBytes / totalBytes * percentMultiplier),
	}, nil
}

// ParseROCmTemp parses the output of: rocm-smi --showtemp --json
// The edge sensor is preferred; the junction sensor is the fallback.
func ParseROCmTemp(output []byte) (float64, error) {
	card, err := firstCard(output)
	if err != nil {
		return 0, err
	}
	raw, ok := card[rocmTempEdgeKey]
	if !ok {
		raw, ok = card[rocmTempJunctKey]
	}
	if !ok {
		return 0, ErrNoReading
	}
	v, err := cardValue(raw, "°C")
	if err != nil {
		return 0, fmt.Errorf("failed to parse temperature: %w", err)
	}
	return math.Trunc(v), nil
}

func firstCard(output []byte) (map[string]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(output, &doc); err != nil {
		return nil, fmt.Errorf("rocm-smi output is not JSON: %w", err)
	}
	raw, ok := doc[rocmCard]
	if !ok {
		return nil, ErrNoReading
	}
	var card map[string]json.RawMessage
	if err := json.Unmarshal(raw, &card); err != nil {
		return nil, fmt.Errorf("rocm-smi %s entry is not an object: %w", rocmCard, err)
	}
	return card, nil
}

// cardValue reads a value that rocm-smi emits either as a JSON number or as a
// string, optionally carrying a unit suffix.
func cardValue(raw json.RawMessage, suffixes ...string) (float64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return 0, fmt.Errorf("unexpected value %s", string(raw))
		}
		return f, nil
	}
	for _, suffix := range suffixes {
		s = strings.ReplaceAll(s, suffix, "")
	}
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected value %q", s)
	}
	return f, nil
}
