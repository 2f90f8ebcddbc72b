// Package report writes the result tables of a sweep run.
//
// All tables go out as CSV so they load directly into spreadsheet and
// plotting tools; the run summary is a human-readable text file listing
// per-combination outcomes, warnings and rejected peaks.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/stats/regional"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/sweep"
)

// File names emitted into the output directory.
const (
	FilePeaks       = "peaks.csv"
	FileRejected    = "rejected_peaks.csv"
	FileComparative = "regional_comparative.csv"
	FileDeltas      = "delta_metrics.csv"
	FileSummary     = "run_summary.txt"
)

// Writer emits report files into one output directory.
type Writer struct {
	dir string
}

// New creates the output directory (and parents) and returns a Writer.
func New(dir string) (*Writer, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	return &Writer{dir: dir}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteAll emits every report file for the given summary.
func (w *Writer) WriteAll(sum regional.Summary) error {
	err := w.writeCSV(FilePeaks, peakHeader, peakRows(sum.Peaks))
	if err != nil {
		return err
	}

	err = w.writeCSV(FileRejected, rejectedHeader, rejectedRows(sum.Rejected))
	if err != nil {
		return err
	}

	err = w.writeCSV(FileComparative, comparativeHeader, comparativeRows(sum.Comparative))
	if err != nil {
		return err
	}

	err = w.writeCSV(FileDeltas, deltaHeader, deltaRows(sum.Deltas))
	if err != nil {
		return err
	}

	return w.writeSummary(sum)
}

var (
	peakHeader = []string{
		"combination", "region", "center", "height", "area", "fwhm", "r2",
	}
	rejectedHeader = []string{
		"combination", "region", "center", "reason",
	}
	comparativeHeader = []string{
		"combination", "baseline", "normalization", "region", "n",
		"mean_fwhm", "std_fwhm", "cv_fwhm",
		"mean_center", "std_center", "cv_center",
		"mean_r2", "std_r2", "score",
	}
	deltaHeader = []string{
		"baseline", "region", "normalization", "reference",
		"delta_fwhm", "delta_cv", "valid",
	}
)

func peakRows(peaks []sweep.PeakRecord) [][]string {
	rows := make([][]string, 0, len(peaks))
	for _, p := range peaks {
		rows = append(rows, []string{
			p.Combination, p.Region,
			formatFloat(p.Center), formatFloat(p.Height), formatFloat(p.Area),
			formatFloat(p.FWHM), formatFloat(p.R2),
		})
	}

	return rows
}

func rejectedRows(peaks []sweep.PeakRecord) [][]string {
	rows := make([][]string, 0, len(peaks))
	for _, p := range peaks {
		rows = append(rows, []string{
			p.Combination, p.Region, formatFloat(p.Center), p.RejectReason,
		})
	}

	return rows
}

func comparativeRows(metrics []regional.Metrics) [][]string {
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{
			m.Combination, m.BaselineID, m.Normalization, m.Region,
			strconv.Itoa(m.N),
			formatFloat(m.MeanFWHM), formatFloat(m.StdFWHM), formatFloat(m.CVFWHM),
			formatFloat(m.MeanCenter), formatFloat(m.StdCenter), formatFloat(m.CVCenter),
			formatFloat(m.MeanR2), formatFloat(m.StdR2), formatFloat(m.Score),
		})
	}

	return rows
}

func deltaRows(deltas []regional.Delta) [][]string {
	rows := make([][]string, 0, len(deltas))
	for _, d := range deltas {
		rows = append(rows, []string{
			d.BaselineID, d.Region, d.Normalization, d.Reference,
			formatFloat(d.DeltaFWHM), formatFloat(d.DeltaCV),
			strconv.FormatBool(d.Valid),
		})
	}

	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	cw := csv.NewWriter(f)

	err = cw.Write(header)
	if err == nil {
		err = cw.WriteAll(rows)
	}

	cw.Flush()

	if flushErr := cw.Error(); err == nil {
		err = flushErr
	}

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("report: %s: %w", name, err)
	}

	return nil
}

func (w *Writer) writeSummary(sum regional.Summary) error {
	var b strings.Builder

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "COMBINATION\tSTATE\tPEAKS\tREJECTED\tNOTES")

	for _, out := range sum.Outcomes {
		notes := out.Error

		if len(out.Warnings) > 0 {
			if notes != "" {
				notes += "; "
			}

			notes += strings.Join(out.Warnings, "; ")
		}

		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			out.Combination, out.State, out.Accepted, out.Rejected, notes)
	}

	err := tw.Flush()
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	fmt.Fprintf(&b, "\ncomparative rows: %d\naccepted peaks: %d\nrejected peaks: %d\n",
		len(sum.Comparative), len(sum.Peaks), len(sum.Rejected))

	for _, out := range sum.Outcomes {
		for _, reason := range out.RejectReasons {
			fmt.Fprintf(&b, "rejected: %s: %s\n", out.Combination, reason)
		}
	}

	err = os.WriteFile(filepath.Join(w.dir, FileSummary), []byte(b.String()), 0o644)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return nil
}
