// Package fitter fits beta-binomial parameters to frequency profiles with a
// deterministic coarse-to-fine grid search.
package fitter

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Objective scores a candidate (alpha, beta). Lower is better; NaN never wins.
// It must be safe for concurrent use.
type Objective func(alpha, beta float64) float64

// Axis is an evenly spaced sequence of Count values starting at Start
type Axis struct {
	Start float64
	Step  float64
	Count int
}

// Value returns the i-th value of the axis
func (a Axis) Value(i int) float64 {
	return a.Start + float64(i)*a.Step
}

// Range builds the axis [start, stop) with the given step
func Range(start, stop, step float64) Axis {
	count := int(math.Ceil((stop - start) / step))
	if count < 0 {
		count = 0
	}
	return Axis{Start: start, Step: step, Count: count}
}

// Grid is the cartesian product of an alpha axis and a beta axis, scanned
// alpha-major
type Grid struct {
	Alpha Axis
	Beta  Axis
}

// Size returns the number of candidates in the grid
func (g Grid) Size() int {
	return g.Alpha.Count * g.Beta.Count
}

// Result is the best candidate found so far
type Result struct {
	Alpha       float64
	Beta        float64
	Score       float64
	Evaluations int
}

// sentinel is the starting point of every search. It is returned unchanged
// when no candidate scores a finite value.
func sentinel() Result {
	return Result{Score: math.Inf(1)}
}

// Options controls the shape of the search
type Options struct {
	CoarseMin         float64
	CoarseMax         float64
	CoarseStep        float64
	RefineMinExponent int
	RefineMaxExponent int
	WindowFactor      float64
	Workers           int
	// MaxPasses bounds the window scans per refinement step; 0 means DefaultMaxPasses
	MaxPasses         int
}

// DefaultMaxPasses is the per-step pass limit used when Options.MaxPasses is 0
const DefaultMaxPasses = 100

// DefaultOptions scans [0, 1000) in steps of 10, then refines with step sizes
// 10^4 down to 10^-2 in windows of ten steps either side of the best point
func DefaultOptions() Options {
	return Options{
		CoarseMin:         0,
		CoarseMax:         1000,
		CoarseStep:        10,
		RefineMinExponent: -2,
		RefineMaxExponent: 4,
		WindowFactor:      10,
	}
}

// CoarseGrid returns the exhaustive first-phase grid
func (o Options) CoarseGrid() Grid {
	axis := Range(o.CoarseMin, o.CoarseMax, o.CoarseStep)
	return Grid{Alpha: axis, Beta: axis}
}

// RefinementSteps returns the refinement step sizes, largest first
func (o Options) RefinementSteps() []float64 {
	steps := make([]float64, 0, o.RefineMaxExponent-o.RefineMinExponent+1)
	for e := o.RefineMaxExponent; e >= o.RefineMinExponent; e-- {
		steps = append(steps, math.Pow(10, float64(e)))
	}
	return steps
}

// Window returns the refinement grid for one step size: [best-radius,
// best+radius) with radius = step*WindowFactor. No floor is applied, so
// candidates may be negative.
func (o Options) Window(best Result, step float64) Grid {
	radius := step * o.WindowFactor
	count := int(math.Round(2 * o.WindowFactor))
	return Grid{
		Alpha: Axis{Start: best.Alpha - radius, Step: step, Count: count},
		Beta:  Axis{Start: best.Beta - radius, Step: step, Count: count},
	}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) maxPasses() int {
	if o.MaxPasses > 0 {
		return o.MaxPasses
	}
	return DefaultMaxPasses
}

// Search minimizes objective: an exhaustive coarse scan followed by
// refinement windows of decreasing step size. At each step size the window is
// re-centered on the best point and scanned again until a pass brings no
// strict improvement, so the search can follow a valley further than one
// window reaches. Among equal scores the first candidate in scan order wins,
// i.e. the lowest alpha, then the lowest beta.
func Search(ctx context.Context, objective Objective, opts Options) (Result, error) {
	best, err := scan(ctx, opts.CoarseGrid(), objective, sentinel(), opts.workers())
	if err != nil {
		return best, err
	}
	for _, step := range opts.RefinementSteps() {
		best, err = refine(ctx, objective, opts, best, step)
		if err != nil {
			return best, err
		}
	}
	return best, nil
}

func refine(ctx context.Context, objective Objective, opts Options, best Result, step float64) (Result, error) {
	for pass := 0; pass < opts.maxPasses(); pass++ {
		next, err := scan(ctx, opts.Window(best, step), objective, best, opts.workers())
		if err != nil {
			return best, err
		}
		improved := next.Score < best.Score
		best = next
		if !improved {
			break
		}
	}
	return best, nil
}

// scan evaluates every grid candidate and returns the improved best. Rows are
// scored concurrently, then reduced in row order so that the outcome equals a
// serial alpha-major scan with strict improvement.
func scan(ctx context.Context, grid Grid, objective Objective, best Result, workers int) (Result, error) {
	rows := make([]Result, grid.Alpha.Count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < grid.Alpha.Count; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = scanRow(grid, i, objective)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return best, err
	}

	evaluations := best.Evaluations + grid.Size()
	for _, row := range rows {
		if row.Score < best.Score {
			best = row
		}
	}
	best.Evaluations = evaluations
	return best, nil
}

func scanRow(grid Grid, i int, objective Objective) Result {
	alpha := grid.Alpha.Value(i)
	row := sentinel()
	for j := 0; j < grid.Beta.Count; j++ {
		beta := grid.Beta.Value(j)
		score := objective(alpha, beta)
		if score < row.Score {
			row = Result{Alpha: alpha, Beta: beta, Score: score}
		}
	}
	return row
}
