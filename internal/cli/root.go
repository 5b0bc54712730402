package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/gpuoverlay/internal/config"
	"github.com/rileyhilliard/gpuoverlay/internal/source"
	"github.com/rileyhilliard/gpuoverlay/internal/telemetry"
	"github.com/rileyhilliard/gpuoverlay/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Global flags
var (
	cfgFile string
	noColor bool
)

// v holds config merged from defaults, file, environment and bound flags.
var v = config.NewViper()

// rootCmd runs the overlay when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "gpuoverlay",
	Short: "Floating GPU telemetry overlay for the terminal",
	Long: `gpuoverlay shows GPU utilization, VRAM usage and temperature in a small
panel you can drag, collapse and close. The panel remembers where you put it.

Readings come from rocm-smi, nvidia-smi, or JSON events on stdin:
  {"type":"gpu_monitor","data":{"gpus":[{"gpu_utilization":45,"vram_used":2048,"vram_total":8192,"vram_used_percent":25,"gpu_temperature":60}]}}

Examples:
  gpuoverlay
  gpuoverlay --source nvidia --interval 500ms
  my-exporter | gpuoverlay --source stdin`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return overlayCommand(cmd.Context(), cfg)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/.config/gpuoverlay/config.yaml)")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.String("source", config.SourceROCm, "telemetry source: rocm, nvidia or stdin")
	flags.Duration("interval", source.DefaultInterval, "polling interval for rocm and nvidia")
	flags.String("smi-path", "", "path to rocm-smi or nvidia-smi")
	flags.String("event", telemetry.DefaultEvent, "event name readings are published under")
	flags.String("prefs-file", "", "where overlay position and closed state are saved")
	flags.String("metrics-addr", "", "serve Prometheus metrics on host:port")

	bindFlags(v, rootCmd)
}

// bindFlags ties the config flags to their viper keys.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for key, flag := range map[string]string{
		"source":       "source",
		"interval":     "interval",
		"smi_path":     "smi-path",
		"event":        "event",
		"prefs_file":   "prefs-file",
		"metrics_addr": "metrics-addr",
	} {
		_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag))
	}
}

// loadConfig finds, loads and validates the config.
func loadConfig() (*config.Config, error) {
	path, err := config.Find(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(v, path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		msg := err.Error()
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		fmt.Fprint(os.Stderr, msg)
		os.Exit(1)
	}
}
