// Package source produces GPU telemetry events and publishes them on a
// telemetry.Bus.
//
// Two kinds of producer exist:
//
//	Poller        - runs a Collector (rocm-smi or nvidia-smi) on an interval
//	StreamSource  - reads JSON-lines envelopes pushed by another process
//
// The overlay never imports this package; it only sees the bus.
package source
