package report

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/peaks"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/stats/regional"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/sweep"
)

func sampleSummary() regional.Summary {
	return regional.Summary{
		Comparative: []regional.Metrics{
			{
				Combination: "airpls+none", BaselineID: "airpls",
				Normalization: "none", Region: "nu3(SiO4)",
				N: 2, MeanFWHM: 11.5, StdFWHM: 0.5, CVFWHM: 4.347826,
				MeanCenter: 1007.9, MeanR2: 0.998, Score: 48.6,
			},
			{
				Combination: "airpls+area", BaselineID: "airpls",
				Normalization: "area", Region: "nu3(SiO4)",
			},
		},
		Deltas: []regional.Delta{
			{
				BaselineID: "airpls", Region: "nu3(SiO4)",
				Normalization: "area", Reference: "none",
				DeltaFWHM: 0.02, DeltaCV: -0.1, Valid: true,
			},
		},
		Peaks: []sweep.PeakRecord{
			{
				Peak: peaks.Peak{
					Center: 1007.9, Height: 120.4, Area: 1502.1,
					FWHM: 11.5, R2: 0.998, Accepted: true,
				},
				Region:      "nu3(SiO4)",
				Combination: "airpls+none",
			},
		},
		Rejected: []sweep.PeakRecord{
			{
				Peak: peaks.Peak{
					Center:       445.2,
					RejectReason: peaks.RejectLowR2,
				},
				Region:      "nu2(SiO4)",
				Combination: "airpls+none",
			},
		},
		Outcomes: []regional.Outcome{
			{
				Combination: "airpls+none", State: "Completed",
				Accepted: 1, Rejected: 1,
				Warnings:      []string{"baseline hit iteration cap"},
				RejectReasons: []string{peaks.RejectLowR2},
			},
			{
				Combination: "airpls+minmax", State: "Failed",
				Error: "normalize minmax: degenerate intensity range",
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return rows
}

func TestWriteAllEmitsEveryFile(t *testing.T) {
	dir := t.TempDir()

	w, err := New(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = w.WriteAll(sampleSummary())
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	for _, name := range []string{
		FilePeaks, FileRejected, FileComparative, FileDeltas, FileSummary,
	} {
		_, err := os.Stat(filepath.Join(w.Dir(), name))
		if err != nil {
			t.Errorf("missing report file %s: %v", name, err)
		}
	}
}

func TestPeakTableContents(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = w.WriteAll(sampleSummary())
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	rows := readCSV(t, filepath.Join(w.Dir(), FilePeaks))
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 peak row, got %d rows", len(rows))
	}

	if rows[0][0] != "combination" || rows[0][6] != "r2" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	got := rows[1]
	if got[0] != "airpls+none" || got[1] != "nu3(SiO4)" || got[2] != "1007.9" {
		t.Fatalf("unexpected peak row: %v", got)
	}
}

func TestComparativeTableIncludesZeroCountRows(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = w.WriteAll(sampleSummary())
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	rows := readCSV(t, filepath.Join(w.Dir(), FileComparative))
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 metric rows, got %d", len(rows))
	}

	zero := rows[2]
	if zero[0] != "airpls+area" || zero[4] != "0" {
		t.Fatalf("zero-count row not preserved: %v", zero)
	}
}

func TestRejectedTableCarriesReason(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = w.WriteAll(sampleSummary())
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	rows := readCSV(t, filepath.Join(w.Dir(), FileRejected))
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 rejected row, got %d", len(rows))
	}

	if rows[1][3] != peaks.RejectLowR2 {
		t.Fatalf("expected reject reason %q, got %q", peaks.RejectLowR2, rows[1][3])
	}
}

func TestSummaryListsOutcomesAndWarnings(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = w.WriteAll(sampleSummary())
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(w.Dir(), FileSummary))
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}

	text := string(data)

	for _, want := range []string{
		"airpls+none", "Completed",
		"airpls+minmax", "Failed",
		"baseline hit iteration cap",
		"degenerate intensity range",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestNewRejectsUnwritablePath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")

	err := os.WriteFile(file, []byte("x"), 0o644)
	if err != nil {
		t.Fatalf("seed file: %v", err)
	}

	_, err = New(filepath.Join(file, "out"))
	if err == nil {
		t.Fatal("expected error creating directory under a regular file")
	}

	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected wrapped *os.PathError, got %T", err)
	}
}
