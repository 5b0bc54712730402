package telemetry

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultEvent is the event name GPU readings are published under.
const DefaultEvent = "gpu_monitor"

// Number is a reading value. Decoding never fails: JSON numbers and numeric
// strings are taken as-is, anything else (null, bool, object, junk, NaN,
// Inf) is 0.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*n = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*n = 0
		return nil
	}
	*n = Number(v)
	return nil
}

// Float returns the value as a float64.
func (n Number) Float() float64 {
	return float64(n)
}

// String formats the value the shortest way that round-trips (45, 45.5).
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Record is one GPU reading. VRAM values are megabytes, temperature is Celsius.
type Record struct {
	Utilization     Number `json:"gpu_utilization"`
	VRAMUsed        Number `json:"vram_used"`
	VRAMTotal       Number `json:"vram_total"`
	VRAMUsedPercent Number `json:"vram_used_percent"`
	Temperature     Number `json:"gpu_temperature"`
}

// Payload is the body of a telemetry event.
type Payload struct {
	DeviceType string   `json:"device_type,omitempty"`
	GPUs       []Record `json:"gpus"`
}

// First returns the first GPU record. ok is false when the list is empty.
func (p Payload) First() (Record, bool) {
	if len(p.GPUs) == 0 {
		return Record{}, false
	}
	return p.GPUs[0], true
}

// Envelope frames a payload with its event name on a stream.
type Envelope struct {
	Type string  `json:"type"`
	Data Payload `json:"data"`
}

// DecodeEnvelope parses one framed event.
func DecodeEnvelope(line []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}
