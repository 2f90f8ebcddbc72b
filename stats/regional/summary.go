package regional

import (
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/normalize"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/region"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/sweep"
)

// Outcome records how one combination ended, for the run log section of
// reports.
type Outcome struct {
	Combination string
	State       string
	Error       string
	Warnings    []string
	Accepted    int
	Rejected    int
	// RejectReasons lists the reasons of this combination's rejected
	// peaks, one entry per rejected peak.
	RejectReasons []string
}

// Summary is the full cross-combination result set handed to report
// emitters.
type Summary struct {
	// Comparative is the regional comparative table: one row per
	// (combination, region) pair, zero-count rows included.
	Comparative []Metrics
	// Deltas isolate normalization effects against the reference method.
	Deltas []Delta
	// Peaks concatenates all accepted peaks across combinations, in grid
	// order.
	Peaks []sweep.PeakRecord
	// Rejected concatenates all rejected peaks across combinations.
	Rejected []sweep.PeakRecord
	// Outcomes enumerates every combination's final state.
	Outcomes []Outcome
}

// Options configures summary construction.
type Options struct {
	Table     region.Table
	Weights   ScoreWeights
	Reference normalize.Method
}

// DefaultOptions returns the documented aggregation defaults.
func DefaultOptions() Options {
	return Options{
		Table:     region.DefaultTable(),
		Weights:   DefaultScoreWeights(),
		Reference: normalize.MethodNone,
	}
}

// Summarize reduces the 12 sweep results into the comparative summary.
func Summarize(results []sweep.Result, opts Options) Summary {
	if opts.Table.Len() == 0 {
		opts.Table = region.DefaultTable()
	}

	if opts.Weights == (ScoreWeights{}) {
		opts.Weights = DefaultScoreWeights()
	}

	sum := Summary{
		Comparative: Compute(results, opts.Table, opts.Weights),
		Outcomes:    make([]Outcome, 0, len(results)),
	}

	sum.Deltas = Deltas(sum.Comparative, opts.Reference)

	for _, res := range results {
		out := Outcome{
			Combination: res.Combination.ID(),
			State:       res.State.String(),
			Warnings:    res.Warnings,
			Accepted:    len(res.Peaks),
			Rejected:    len(res.Rejected),
		}

		if res.Err != nil {
			out.Error = res.Err.Error()
		}

		for _, p := range res.Rejected {
			out.RejectReasons = append(out.RejectReasons, p.RejectReason)
		}

		sum.Outcomes = append(sum.Outcomes, out)
		sum.Peaks = append(sum.Peaks, res.Peaks...)
		sum.Rejected = append(sum.Rejected, res.Rejected...)
	}

	return sum
}
