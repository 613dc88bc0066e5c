package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/rr-analyzer/internal/analysis"
	"github.com/yourusername/rr-analyzer/internal/config"
	"github.com/yourusername/rr-analyzer/internal/divergence"
	"github.com/yourusername/rr-analyzer/internal/health"
	"github.com/yourusername/rr-analyzer/internal/metrics"
	"github.com/yourusername/rr-analyzer/internal/models"
	"github.com/yourusername/rr-analyzer/internal/report"
	"github.com/yourusername/rr-analyzer/internal/schedule"
	"github.com/yourusername/rr-analyzer/internal/scheduler"
)

var (
	inputPath  string
	teamCount  int
	runName    string
	outputDir  string
	parallel   bool
	noVerify   bool
	csvPath    string
	xlsxPath   string
	forceNorm  bool
	scale      float64
	maxDiff    int
	jobTimeout time.Duration
)

func init() {
	for _, cmd := range []*cobra.Command{verifyCmd, diffCmd, analyzeCmd, watchCmd} {
		cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Schedule file, one schedule per line")
		cmd.Flags().IntVarP(&teamCount, "teams", "n", 0, "Number of teams")
	}
	for _, cmd := range []*cobra.Command{diffCmd, analyzeCmd, watchCmd} {
		cmd.Flags().StringVarP(&outputDir, "out", "o", "", "Directory for difference stream files")
		cmd.Flags().BoolVar(&parallel, "parallel", false, "Compare schedule pairs concurrently")
		cmd.Flags().StringVar(&runName, "name", "", "Run name, defaults to the input file name")
	}
	for _, cmd := range []*cobra.Command{analyzeCmd, watchCmd} {
		cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip constraint verification")
		cmd.Flags().StringVar(&csvPath, "csv", "", "Write a CSV summary to this path")
		cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write an XLSX workbook to this path")
	}
	analyzeCmd.Flags().IntVar(&maxDiff, "max-diff", 0, "Upper bound of the beta-binomial support, 0 uses the observed maximum")
	watchCmd.Flags().DurationVar(&jobTimeout, "timeout", 30*time.Minute, "Maximum duration of one analysis run")

	fitCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Difference stream file")
	fitCmd.Flags().BoolVar(&forceNorm, "normal", false, "Fit a normal distribution instead of a beta-binomial")
	fitCmd.Flags().Float64Var(&scale, "scale", 2, "Multiplier applied to matchup differences before binning")
	fitCmd.Flags().IntVar(&maxDiff, "max-diff", 0, "Upper bound of the beta-binomial support, 0 uses the observed maximum")
	_ = fitCmd.MarkFlagRequired("input")
}

// applyOverrides copies explicitly set flags onto the configuration and validates it
func applyOverrides(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Analysis.Input = inputPath
	}
	if flags.Changed("teams") {
		cfg.Analysis.Teams = teamCount
	}
	if flags.Changed("name") {
		cfg.Analysis.Name = runName
	}
	if flags.Changed("out") {
		cfg.Analysis.OutputDir = outputDir
	}
	if flags.Changed("parallel") {
		cfg.Analysis.Parallel = parallel
	}
	if flags.Changed("no-verify") {
		cfg.Analysis.Verify = !noVerify
	}
	if flags.Changed("csv") {
		cfg.Report.CSVPath = csvPath
	}
	if flags.Changed("xlsx") {
		cfg.Report.XLSXPath = xlsxPath
	}
	if flags.Changed("max-diff") {
		cfg.Histogram.MaxDiff = maxDiff
	}
	return config.Validate(cfg)
}

func loadSchedules() ([]models.Schedule, error) {
	return schedule.LoadFile(cfg.Analysis.Input, cfg.Analysis.Teams)
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check schedules against round-robin constraints",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer exportMetrics()
		if err := applyOverrides(cmd); err != nil {
			return err
		}
		schedules, err := loadSchedules()
		if err != nil {
			return err
		}

		svc := analysis.NewService(nil, nil, log)
		violations := svc.Verify(cfg.Analysis.Teams, schedules)
		out := cmd.OutOrStdout()
		for _, v := range violations {
			fmt.Fprintln(out, v.String())
		}
		if len(violations) > 0 {
			return fmt.Errorf("%d violations found in %d schedules", len(violations), len(schedules))
		}
		fmt.Fprintf(out, "%d schedules verified, no violations\n", len(schedules))
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compute pairwise schedule differences and write the stream files",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer exportMetrics()
		if err := applyOverrides(cmd); err != nil {
			return err
		}
		schedules, err := loadSchedules()
		if err != nil {
			return err
		}

		opts := analysis.OptionsFromConfig(cfg)
		svc := analysis.NewService(nil, nil, log)
		pairs, err := svc.Compare(cmd.Context(), schedules, opts)
		if err != nil {
			return err
		}

		paths, err := schedule.WriteStreams(opts.OutputDir, opts.Name, divergence.Streams(pairs))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, metric := range models.AllMetrics {
			fmt.Fprintln(out, paths[metric])
		}
		return nil
	},
}

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit the distribution of a difference stream file",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer exportMetrics()
		if scale <= 0 {
			return fmt.Errorf("scale must be positive, got %v", scale)
		}

		stream, err := schedule.ReadStreamFile(inputPath)
		if err != nil {
			return err
		}

		metric, ok := schedule.MetricForFile(inputPath)
		if !ok {
			metric = models.MetricRaw
		}
		if forceNorm {
			metric = models.MetricVenueOnly
		}

		opts := analysis.OptionsFromConfig(cfg)
		opts.MatchupScale = scale
		if cmd.Flags().Changed("max-diff") {
			opts.MaxDiff = maxDiff
		}

		svc := analysis.NewService(nil, nil, log)
		summary, err := svc.Summarize(cmd.Context(), metric, stream, opts)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.GenerateSummaryText(summary))
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run verification, comparison, fitting and reporting",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer exportMetrics()
		if err := applyOverrides(cmd); err != nil {
			return err
		}

		rt, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		result, err := analyzeOnce(cmd.Context(), rt)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.GenerateConsoleReport(result.Report))
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the analysis on the configured cron schedule until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyOverrides(cmd); err != nil {
			return err
		}
		if cfg.Watch.Schedule == "" {
			return fmt.Errorf("watch.schedule must be set")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		var hs *health.Server
		if cfg.Watch.ListenAddr != "" {
			hcfg := health.Config{
				ServiceName: cfg.App.Name,
				Version:     Version,
				Addr:        cfg.Watch.ListenAddr,
				Logger:      log,
			}
			if rt.db != nil {
				hcfg.DB = rt.db
			}
			if cfg.Metrics.Enabled {
				hcfg.Registry = metrics.GetRegistry()
			}
			hs = health.NewServer(hcfg)
			if err := hs.Start(ctx); err != nil {
				return err
			}
		}

		s := scheduler.NewScheduler(log, jobTimeout)
		err = s.Schedule(cfg.Watch.Schedule, "analyze", func(jobCtx context.Context) error {
			defer exportMetrics()
			_, err := analyzeOnce(jobCtx, rt)
			if hs != nil {
				hs.RecordRun(time.Now(), err)
			}
			return err
		})
		if err != nil {
			return err
		}
		if err := s.Start(); err != nil {
			return err
		}
		if hs != nil {
			hs.SetReady(true)
		}

		<-ctx.Done()
		log.Info("Shutting down watcher")
		return s.Stop()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rr-analyzer %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func analyzeOnce(ctx context.Context, rt *app) (*analysis.Result, error) {
	schedules, err := loadSchedules()
	if err != nil {
		return nil, err
	}
	return rt.service.Run(ctx, schedules, analysis.OptionsFromConfig(cfg))
}
