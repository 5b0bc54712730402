package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/gpuoverlay/internal/errors"
	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the config directory, relative to the home directory.
	GlobalConfigDir = ".config/gpuoverlay"
	// GlobalConfigFile is the config file name inside GlobalConfigDir.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix is prepended to config keys to form environment variable names.
	EnvPrefix = "GPUOVERLAY"
)

// NewViper returns a viper instance with defaults and environment binding set
// up. Callers bind flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Find locates the config file:
// 1. Explicit path (from --config flag)
// 2. ~/.config/gpuoverlay/config.yaml
//
// Returns an empty string if no file exists. Running without a config file is fine.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", nil
	}
	global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}

// Load reads path (if non-empty) into v and decodes the merged result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		where := "your config"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+where+" (interval takes a duration like 500ms or 2s)")
	}

	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	cfg.PrefsFile = expandHome(cfg.PrefsFile)
	cfg.SMIPath = expandHome(cfg.SMIPath)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("source", def.Source)
	v.SetDefault("interval", def.Interval.String())
	v.SetDefault("smi_path", def.SMIPath)
	v.SetDefault("event", def.Event)
	v.SetDefault("prefs_file", def.PrefsFile)
	v.SetDefault("metrics_addr", def.MetricsAddr)
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
