package regional

import (
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/normalize"
)

// Delta quantifies the isolated effect of one normalization method on one
// region, holding the baseline method fixed: the difference between the
// method's regional metrics and the reference normalization's metrics under
// the same baseline.
type Delta struct {
	BaselineID    string
	Region        string
	Normalization string
	Reference     string

	// DeltaFWHM is meanFWHM(method) - meanFWHM(reference) in cm^-1.
	DeltaFWHM float64
	// DeltaCV is cvFWHM(method) - cvFWHM(reference) in percentage points.
	DeltaCV float64

	// Valid is false when either side of the comparison has no accepted
	// peaks in the region; the deltas are zero in that case.
	Valid bool
}

// Deltas derives delta metrics from a comparative metrics table. One row is
// produced per (baseline, region, non-reference normalization) triple
// present in the table.
func Deltas(metrics []Metrics, reference normalize.Method) []Delta {
	ref := reference.String()

	// Index reference cells by (baseline, region).
	type key struct {
		baseline string
		region   string
	}

	refCells := make(map[key]Metrics)

	for _, m := range metrics {
		if m.Normalization == ref {
			refCells[key{m.BaselineID, m.Region}] = m
		}
	}

	var out []Delta

	for _, m := range metrics {
		if m.Normalization == ref {
			continue
		}

		d := Delta{
			BaselineID:    m.BaselineID,
			Region:        m.Region,
			Normalization: m.Normalization,
			Reference:     ref,
		}

		r, ok := refCells[key{m.BaselineID, m.Region}]
		if ok && m.N > 0 && r.N > 0 {
			d.DeltaFWHM = m.MeanFWHM - r.MeanFWHM
			d.DeltaCV = m.CVFWHM - r.CVFWHM
			d.Valid = true
		}

		out = append(out, d)
	}

	return out
}
