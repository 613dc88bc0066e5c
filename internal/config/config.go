// Package config provides configuration management for the rr-analyzer tool.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" validate:"required"`
	Histogram HistogramConfig `mapstructure:"histogram" validate:"required"`
	Fitter    FitterConfig    `mapstructure:"fitter" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Report    ReportConfig    `mapstructure:"report"`
	Watch     WatchConfig     `mapstructure:"watch"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// AnalysisConfig describes the schedule file to analyze
type AnalysisConfig struct {
	Teams     int    `mapstructure:"teams" validate:"required,min=4,even"`
	Input     string `mapstructure:"input" validate:"required"`
	OutputDir string `mapstructure:"output_dir" validate:"required"`
	Name      string `mapstructure:"name"`
	Verify    bool   `mapstructure:"verify"`
	Parallel  bool   `mapstructure:"parallel"`
	Workers   int    `mapstructure:"workers" validate:"gte=0"`
}

// HistogramConfig controls how difference streams are binned
type HistogramConfig struct {
	BinWidth     float64 `mapstructure:"bin_width" validate:"required,gt=0"`
	MatchupScale float64 `mapstructure:"matchup_scale" validate:"required,metricscale"`
	MaxDiff      int     `mapstructure:"max_diff" validate:"gte=0"`
}

// FitterConfig controls the grid search
type FitterConfig struct {
	CoarseMin         float64 `mapstructure:"coarse_min" validate:"gte=0"`
	CoarseMax         float64 `mapstructure:"coarse_max" validate:"required,gt=0"`
	CoarseStep        float64 `mapstructure:"coarse_step" validate:"required,gt=0"`
	RefineMinExponent int     `mapstructure:"refine_min_exponent" validate:"gte=-8,lte=8"`
	RefineMaxExponent int     `mapstructure:"refine_max_exponent" validate:"gte=-8,lte=8"`
	WindowFactor      float64 `mapstructure:"window_factor" validate:"required,gt=0"`
	Workers           int     `mapstructure:"workers" validate:"gte=0"`
	MaxPasses         int     `mapstructure:"max_passes" validate:"gte=0"`
}

// CacheConfig controls the in-process fit cache
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"gte=0"`
	MaxSize    int `mapstructure:"max_size" validate:"gte=0"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port           int    `mapstructure:"port" validate:"required_if=Enabled true,gte=0,max=65535"`
	Name           string `mapstructure:"name" validate:"required_if=Enabled true"`
	User           string `mapstructure:"user" validate:"required_if=Enabled true"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
}

// MetricsConfig represents metrics export configuration
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	TextfilePath string `mapstructure:"textfile_path" validate:"required_if=Enabled true"`
}

// ReportConfig names optional report outputs
type ReportConfig struct {
	CSVPath  string `mapstructure:"csv_path"`
	XLSXPath string `mapstructure:"xlsx_path"`
}

// WatchConfig controls periodic re-analysis
type WatchConfig struct {
	Schedule string `mapstructure:"schedule"`
	// ListenAddr serves health and metrics endpoints while watching; empty disables it
	ListenAddr string `mapstructure:"listen_addr"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// CacheTTL returns the fit cache TTL
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// RunName returns the configured analysis name, falling back to the input file
// name without its extension
func (c *Config) RunName() string {
	if c.Analysis.Name != "" {
		return c.Analysis.Name
	}
	base := filepath.Base(c.Analysis.Input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
