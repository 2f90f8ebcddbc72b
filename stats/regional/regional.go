// Package regional reduces sweep results into per-region statistics, delta
// metrics isolating the effect of normalization, and the comparative
// summary consumed by report emitters.
//
// The comparative table has a strict shape invariant: one row per
// (combination, region) pair, 12 x 7 = 84 rows with the default band
// table, regardless of how many combinations failed or how many regions
// are empty. Failed combinations contribute explicit zero-count rows so a
// consumer can always align tables from different runs.
package regional

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/region"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/sweep"
)

// ScoreWeights weight the composite regional quality score.
//
// The score rewards high mean fit quality and penalizes relative scatter of
// width and position:
//
//	score = clamp(100*R2W*meanR2 - FWHMW*cvFWHM - CenterW*cvCenter, 0, 100)
type ScoreWeights struct {
	R2W     float64
	FWHMW   float64
	CenterW float64
}

// DefaultScoreWeights returns the documented weighting.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{R2W: 0.5, FWHMW: 0.3, CenterW: 0.2}
}

// Metrics aggregates the accepted peaks of one (combination, region) cell.
type Metrics struct {
	Combination   string
	BaselineID    string
	Normalization string
	Region        string

	N int

	MeanFWHM float64
	StdFWHM  float64
	CVFWHM   float64 // percent

	MeanCenter float64
	StdCenter  float64
	CVCenter   float64 // percent

	MeanR2 float64
	StdR2  float64

	Score float64
}

// Compute builds the full comparative metrics table from sweep results:
// one row per (combination, region), in sweep grid order crossed with
// ascending region order. Failed combinations yield zero-count rows.
func Compute(results []sweep.Result, table region.Table, weights ScoreWeights) []Metrics {
	names := table.Names()
	out := make([]Metrics, 0, len(results)*len(names))

	for _, res := range results {
		byRegion := make(map[string][]sweep.PeakRecord, len(names))

		if res.State == sweep.StateCompleted {
			for _, p := range res.Peaks {
				byRegion[p.Region] = append(byRegion[p.Region], p)
			}
		}

		for _, name := range names {
			out = append(out, cell(res, name, byRegion[name], weights))
		}
	}

	return out
}

func cell(res sweep.Result, regionName string, recs []sweep.PeakRecord, weights ScoreWeights) Metrics {
	m := Metrics{
		Combination:   res.Combination.ID(),
		BaselineID:    res.Combination.Baseline.String(),
		Normalization: res.Combination.Normalization.String(),
		Region:        regionName,
		N:             len(recs),
	}

	if len(recs) == 0 {
		return m
	}

	fwhm := make([]float64, len(recs))
	center := make([]float64, len(recs))
	r2 := make([]float64, len(recs))

	for i, p := range recs {
		fwhm[i] = p.FWHM
		center[i] = p.Center
		r2[i] = p.R2
	}

	m.MeanFWHM, m.StdFWHM, m.CVFWHM = describe(fwhm)
	m.MeanCenter, m.StdCenter, m.CVCenter = describe(center)
	m.MeanR2 = stat.Mean(r2, nil)
	m.StdR2 = sampleStd(r2)

	m.Score = score(m, weights)

	return m
}

// describe returns mean, sample standard deviation and CV% of x. A single
// observation has zero spread by convention.
func describe(x []float64) (mean, std, cv float64) {
	mean = stat.Mean(x, nil)
	std = sampleStd(x)

	if mean != 0 {
		cv = std / math.Abs(mean) * 100
	}

	return mean, std, cv
}

func sampleStd(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}

	return stat.StdDev(x, nil)
}

func score(m Metrics, w ScoreWeights) float64 {
	s := 100*w.R2W*m.MeanR2 - w.FWHMW*m.CVFWHM - w.CenterW*m.CVCenter

	if s < 0 {
		return 0
	}

	if s > 100 {
		return 100
	}

	return s
}
