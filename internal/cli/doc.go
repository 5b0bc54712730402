// Package cli implements the gpuoverlay command-line interface.
//
// The root command runs the overlay: it loads config, starts the configured
// telemetry source feeding a telemetry.Bus, optionally serves Prometheus
// metrics, and hands the terminal to the Bubble Tea overlay model.
//
// # Command Structure
//
//	gpuoverlay                  - Run the overlay
//	gpuoverlay sample [--json]  - Collect once and print the reading
//	gpuoverlay prefs show       - Print saved overlay preferences
//	gpuoverlay prefs reset      - Forget position and closed state
//	gpuoverlay version          - Print version information
//	gpuoverlay completion       - Generate shell completions
//
// # Flag Handling
//
// Global flags (--config, --source, --interval, --smi-path, --event,
// --prefs-file, --metrics-addr, --no-color) live on the root command. The
// config flags are bound to viper, so a flag beats GPUOVERLAY_* environment
// variables, which beat the config file.
package cli
