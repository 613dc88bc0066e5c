// Package main provides the rr-analyzer command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/rr-analyzer/internal/analysis"
	"github.com/yourusername/rr-analyzer/internal/cache"
	"github.com/yourusername/rr-analyzer/internal/config"
	"github.com/yourusername/rr-analyzer/internal/database"
	"github.com/yourusername/rr-analyzer/internal/logger"
	"github.com/yourusername/rr-analyzer/internal/metrics"
	"github.com/yourusername/rr-analyzer/internal/repository"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	log        *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	rootCmd.AddCommand(verifyCmd, diffCmd, fitCmd, analyzeCmd, watchCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:           "rr-analyzer",
	Short:         "Verify round-robin schedules and measure how far apart they are",
	Long:          `Checks tournament schedules against round-robin constraints, computes pairwise schedule differences and fits their distributions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		if cfg.Metrics.Enabled {
			metrics.InitRegistry()
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if ctx == nil {
			ctx = context.Background()
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}
	return nil
}

// app holds the optional collaborators of the analysis service
type app struct {
	db      *database.DB
	service *analysis.Service
}

func newApp(ctx context.Context) (*app, error) {
	var runs repository.AnalysisRunRepository
	rt := &app{}

	if cfg.Database.Enabled {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := database.Initialize(connectCtx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repos, err := repository.NewRepositories(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		rt.db = db
		runs = repos.AnalysisRun
	}

	fitCache := cache.NewFitCache(cfg.CacheTTL(), cfg.Cache.MaxSize)
	rt.service = analysis.NewService(runs, fitCache, log)
	return rt, nil
}

func (rt *app) Close() {
	if rt.db != nil {
		rt.db.Close()
	}
}

// exportMetrics writes the metrics textfile when metrics are enabled
func exportMetrics() {
	if !cfg.Metrics.Enabled {
		return
	}
	if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
		log.WithError(err).Warn("Failed to export metrics")
	}
}
