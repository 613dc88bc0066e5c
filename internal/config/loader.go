package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "RR_ANALYZER"

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	setDefaults(v)
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for every optional
// field. A missing config file is not an error.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers every key so AutomaticEnv can override it even when
// the file omits it
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "rr-analyzer")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("analysis.teams", 4)
	v.SetDefault("analysis.input", "")
	v.SetDefault("analysis.output_dir", "Differences")
	v.SetDefault("analysis.name", "")
	v.SetDefault("analysis.verify", true)
	v.SetDefault("analysis.parallel", false)
	v.SetDefault("analysis.workers", 0)

	v.SetDefault("histogram.bin_width", 2.0)
	v.SetDefault("histogram.matchup_scale", 2.0)
	v.SetDefault("histogram.max_diff", 0)

	v.SetDefault("fitter.coarse_min", 0.0)
	v.SetDefault("fitter.coarse_max", 1000.0)
	v.SetDefault("fitter.coarse_step", 10.0)
	v.SetDefault("fitter.refine_min_exponent", -2)
	v.SetDefault("fitter.refine_max_exponent", 4)
	v.SetDefault("fitter.window_factor", 10.0)
	v.SetDefault("fitter.workers", 0)
	v.SetDefault("fitter.max_passes", 100)

	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("cache.max_size", 128)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "rr_analyzer")
	v.SetDefault("database.user", "rr_analyzer")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 4)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile_path", "")

	v.SetDefault("report.csv_path", "")
	v.SetDefault("report.xlsx_path", "")

	v.SetDefault("watch.schedule", "@every 1h")
	v.SetDefault("watch.listen_addr", "")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
