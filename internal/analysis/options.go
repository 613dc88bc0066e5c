package analysis

import (
	"github.com/yourusername/rr-analyzer/internal/config"
	"github.com/yourusername/rr-analyzer/internal/fitter"
	"github.com/yourusername/rr-analyzer/internal/histogram"
)

// Options controls one pipeline run
type Options struct {
	Teams     int
	Name      string
	OutputDir string
	Verify    bool
	Parallel  bool
	Workers   int

	BinWidth     float64
	MatchupScale float64
	// MaxDiff bounds the beta-binomial support; zero uses the observed maximum
	MaxDiff int
	Fitter  fitter.Options

	CSVPath  string
	XLSXPath string
}

// DefaultOptions returns options with the standard binning and search grid
func DefaultOptions(teams int) Options {
	return Options{
		Teams:        teams,
		Verify:       true,
		BinWidth:     histogram.DefaultWidth,
		MatchupScale: 2,
		Fitter:       fitter.DefaultOptions(),
	}
}

// OptionsFromConfig maps validated configuration onto pipeline options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Teams:        cfg.Analysis.Teams,
		Name:         cfg.RunName(),
		OutputDir:    cfg.Analysis.OutputDir,
		Verify:       cfg.Analysis.Verify,
		Parallel:     cfg.Analysis.Parallel,
		Workers:      cfg.Analysis.Workers,
		BinWidth:     cfg.Histogram.BinWidth,
		MatchupScale: cfg.Histogram.MatchupScale,
		MaxDiff:      cfg.Histogram.MaxDiff,
		Fitter: fitter.Options{
			CoarseMin:         cfg.Fitter.CoarseMin,
			CoarseMax:         cfg.Fitter.CoarseMax,
			CoarseStep:        cfg.Fitter.CoarseStep,
			RefineMinExponent: cfg.Fitter.RefineMinExponent,
			RefineMaxExponent: cfg.Fitter.RefineMaxExponent,
			WindowFactor:      cfg.Fitter.WindowFactor,
			Workers:           cfg.Fitter.Workers,
			MaxPasses:         cfg.Fitter.MaxPasses,
		},
		CSVPath:  cfg.Report.CSVPath,
		XLSXPath: cfg.Report.XLSXPath,
	}
}
