// Command ramansweep runs the full baseline/normalization sweep over zircon
// Raman spectra and writes comparative report tables.
//
// Usage:
//
//	ramansweep [flags] -in spectrum.csv
//	ramansweep [flags] -in spectra-dir/
//
// Each input spectrum is processed through all twelve
// baseline-correction/normalization combinations; per-spectrum reports go
// into a subdirectory of -out named after the input file.
//
// Examples:
//
//	ramansweep -in zircon_01.txt
//	ramansweep -in samples/ -out results/ -workers 4
//	ramansweep -in samples/ -config sweep.yaml -v
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/internal/config"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/internal/report"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/internal/specio"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/stats/regional"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/sweep"
)

func main() {
	in := flag.String("in", "", "input spectrum file or directory of spectra (required)")
	cfgPath := flag.String("config", "", "YAML configuration file (defaults used when empty)")
	out := flag.String("out", "reports", "output directory for report tables")
	workers := flag.Int("workers", 0, "parallel combinations (0 uses the configured value)")
	verbose := flag.Bool("v", false, "development logging with per-stage detail")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ramansweep [flags] -in <file-or-dir>\n\n")
		fmt.Fprintf(os.Stderr, "Runs all baseline/normalization combinations over zircon Raman spectra\n")
		fmt.Fprintf(os.Stderr, "and writes peak, regional and delta report tables per spectrum.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ramansweep -in zircon_01.txt\n")
		fmt.Fprintf(os.Stderr, "  ramansweep -in samples/ -out results/ -workers 4\n")
		fmt.Fprintf(os.Stderr, "  ramansweep -in samples/ -config sweep.yaml -v\n")
	}
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	err = run(*in, *cfgPath, *out, *workers, logger)
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(in, cfgPath, out string, workers int, logger *zap.Logger) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	sweepCfg, err := cfg.SweepSettings()
	if err != nil {
		return err
	}
	if workers > 0 {
		sweepCfg.Workers = workers
	}
	sweepCfg.Logger = logger

	opts, err := cfg.SummaryOptions()
	if err != nil {
		return err
	}

	inputs, err := collectInputs(in)
	if err != nil {
		return err
	}

	logger.Info("starting sweep",
		zap.Int("spectra", len(inputs)),
		zap.Int("combinations", len(sweep.Grid())),
		zap.String("out", out))

	runner := sweep.New(sweepCfg)

	for _, path := range inputs {
		err := processSpectrum(runner, path, out, opts, logger)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return nil
}

func collectInputs(in string) ([]string, error) {
	info, err := os.Stat(in)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return specio.Discover(in)
	}

	return []string{in}, nil
}

func processSpectrum(runner *sweep.Runner, path, out string, opts regional.Options, logger *zap.Logger) error {
	spec, err := specio.Load(path)
	if err != nil {
		return err
	}

	log := logger.With(zap.String("spectrum", filepath.Base(path)))
	log.Info("loaded spectrum", zap.Int("points", spec.Len()))

	results := runner.Run(spec)
	summary := regional.Summarize(results, opts)

	completed := 0
	for _, oc := range summary.Outcomes {
		if oc.Error == "" {
			completed++
		}
	}

	w, err := report.New(filepath.Join(out, stemOf(path)))
	if err != nil {
		return err
	}

	err = w.WriteAll(summary)
	if err != nil {
		return err
	}

	log.Info("sweep complete",
		zap.Int("completed", completed),
		zap.Int("failed", len(summary.Outcomes)-completed),
		zap.Int("accepted_peaks", len(summary.Peaks)),
		zap.Int("rejected_peaks", len(summary.Rejected)),
		zap.String("reports", w.Dir()))

	return nil
}

// stemOf returns the file name without its extension, used as the report
// subdirectory name.
func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
