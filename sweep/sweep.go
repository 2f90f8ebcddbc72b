// Package sweep drives the full correction/normalization grid over one
// spectrum.
//
// The grid is the cross product of every baseline method with every
// normalization method in the sweep set: exactly 12 combinations. Each
// combination runs the same sequential stage chain (baseline, normalize,
// detect and fit, classify) against the shared immutable spectrum and
// writes into its own result slot, so combinations are free to run on a
// worker pool. A fatal stage error marks its combination Failed and is
// never allowed to disturb a sibling; the caller always gets 12 results.
package sweep

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/baseline"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/normalize"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/peaks"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/region"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/spectrum"
)

// Combination pairs one baseline method with one normalization method.
type Combination struct {
	Baseline      baseline.Method
	Normalization normalize.Method
}

// ID returns the stable identifier used in reports, e.g. "airpls+area".
func (c Combination) ID() string {
	return c.Baseline.String() + "+" + c.Normalization.String()
}

// Grid returns the full sweep grid in canonical order: baseline methods
// outermost, normalization methods innermost, the reference normalization
// first within each baseline block.
func Grid() []Combination {
	bs := baseline.Methods()
	ns := normalize.Methods()

	grid := make([]Combination, 0, len(bs)*len(ns))

	for _, b := range bs {
		for _, n := range ns {
			grid = append(grid, Combination{Baseline: b, Normalization: n})
		}
	}

	return grid
}

// State tracks how far a combination progressed through its stage chain.
type State int

const (
	StatePending State = iota
	StateBaselineApplied
	StateNormalized
	StatePeaksDetected
	StateRegionsClassified
	StateCompleted
	StateFailed
)

// String returns the state name as emitted in run logs.
func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateBaselineApplied:
		return "BaselineApplied"
	case StateNormalized:
		return "Normalized"
	case StatePeaksDetected:
		return "PeaksDetected"
	case StateRegionsClassified:
		return "RegionsClassified"
	case StateCompleted:
		return "Completed"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("sweep.State(%d)", int(s))
	}
}

// PeakRecord is a fitted peak annotated with its region and combination.
type PeakRecord struct {
	peaks.Peak

	Region      string
	Combination string
}

// Result is the outcome of one combination.
type Result struct {
	Combination Combination
	State       State
	// Err is non-nil iff State == StateFailed.
	Err error
	// Warnings are non-fatal diagnostics, e.g. airPLS hitting its
	// iteration cap.
	Warnings []string
	// Peaks holds the accepted peaks, Rejected the quality failures.
	Peaks    []PeakRecord
	Rejected []PeakRecord

	BaselineIterations int
	BaselineConverged  bool
}

// Config collects the per-stage configuration of a sweep run.
type Config struct {
	Baseline baseline.Config
	Peaks    peaks.Config
	Regions  region.Table
	// Workers bounds combination parallelism; 0 means one worker per CPU.
	Workers int
	// Logger receives per-combination outcomes; nil disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns a sweep configuration with every stage at its
// documented defaults and logging disabled.
func DefaultConfig() Config {
	return Config{
		Baseline: baseline.DefaultConfig(),
		Peaks:    peaks.DefaultConfig(),
		Regions:  region.DefaultTable(),
	}
}

// Runner executes sweep runs.
type Runner struct {
	cfg Config
	log *zap.Logger
}

// New returns a Runner for the given configuration.
func New(cfg Config) *Runner {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if cfg.Regions.Len() == 0 {
		cfg.Regions = region.DefaultTable()
	}

	return &Runner{cfg: cfg, log: log}
}

// Run processes spec under every grid combination and returns one result
// per combination, in grid order. Failed combinations are reported in
// place; the slice always has exactly len(Grid()) entries.
func (r *Runner) Run(spec *spectrum.Spectrum) []Result {
	grid := Grid()
	results := make([]Result, len(grid))

	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers > len(grid) {
		workers = len(grid)
	}

	jobs := make(chan int)

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				results[i] = r.runOne(spec, grid[i])
			}
		}()
	}

	for i := range grid {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	for _, res := range results {
		if res.State == StateFailed {
			r.log.Warn("combination failed",
				zap.String("combination", res.Combination.ID()),
				zap.Error(res.Err),
			)

			continue
		}

		r.log.Info("combination completed",
			zap.String("combination", res.Combination.ID()),
			zap.Int("peaks", len(res.Peaks)),
			zap.Int("rejected", len(res.Rejected)),
			zap.Strings("warnings", res.Warnings),
		)
	}

	return results
}

// runOne executes the sequential stage chain for a single combination.
func (r *Runner) runOne(spec *spectrum.Spectrum, comb Combination) Result {
	res := Result{
		Combination:       comb,
		State:             StatePending,
		BaselineConverged: true,
	}

	if spec == nil || spec.Len() == 0 {
		return fail(res, fmt.Errorf("sweep: %w", spectrum.ErrEmpty))
	}

	corrected, err := baseline.Correct(spec, comb.Baseline, r.cfg.Baseline)
	if err != nil {
		return fail(res, fmt.Errorf("baseline %s: %w", comb.Baseline, err))
	}

	res.State = StateBaselineApplied
	res.BaselineIterations = corrected.Iterations
	res.BaselineConverged = corrected.Converged

	if !corrected.Converged {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("baseline %s did not converge within %d iterations; best estimate used",
				comb.Baseline, corrected.Iterations))
	}

	wavenumbers := spec.Wavenumbers()

	normalized, err := normalize.Normalize(wavenumbers, corrected.Corrected, comb.Normalization)
	if err != nil {
		return fail(res, fmt.Errorf("normalize %s: %w", comb.Normalization, err))
	}

	res.State = StateNormalized

	fitted, err := peaks.DetectAndFit(wavenumbers, normalized, r.cfg.Peaks)
	if err != nil {
		return fail(res, fmt.Errorf("peaks: %w", err))
	}

	res.State = StatePeaksDetected

	id := comb.ID()

	for _, p := range fitted {
		rec := PeakRecord{Peak: p, Combination: id}
		rec.Region, _ = r.cfg.Regions.Classify(p.Center)

		if p.Accepted {
			res.Peaks = append(res.Peaks, rec)
		} else {
			res.Rejected = append(res.Rejected, rec)
		}
	}

	res.State = StateCompleted

	return res
}

func fail(res Result, err error) Result {
	res.State = StateFailed
	res.Err = err

	return res
}
