// Package config loads and validates the yaml run configuration and maps it
// onto the per-stage configuration types.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/baseline"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/normalize"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/peaks"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/region"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/stats/regional"
	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/sweep"
)

// ErrRegionCount rejects overridden band tables that would change the shape
// of the comparative table.
var ErrRegionCount = errors.New("config: region table override must define exactly 7 windows")

// Config mirrors the yaml file structure.
type Config struct {
	Baseline  BaselineConfig  `yaml:"baseline"`
	Detection DetectionConfig `yaml:"detection"`
	Score     ScoreConfig     `yaml:"score"`
	// Regions optionally overrides the built-in zircon band table. When
	// set it must contain exactly 7 windows.
	Regions []RegionConfig `yaml:"regions"`
	// Reference names the delta-metric reference normalization.
	Reference string `yaml:"reference"`
	Workers   int    `yaml:"workers"`
}

// BaselineConfig holds baseline-correction parameters.
type BaselineConfig struct {
	Lambda        float64 `yaml:"lambda"`
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
	Degree        int     `yaml:"degree"`
	Anchors       int     `yaml:"anchors"`
	MaskFactor    float64 `yaml:"mask_factor"`
}

// DetectionConfig holds peak detection and acceptance parameters.
type DetectionConfig struct {
	HeightFactor     float64 `yaml:"height_factor"`
	ProminenceFactor float64 `yaml:"prominence_factor"`
	MinR2            float64 `yaml:"min_r2"`
	FitHalfWidth     int     `yaml:"fit_half_width"`
	MaxPeaks         int     `yaml:"max_peaks"`
	SmoothingWindow  int     `yaml:"smoothing_window"`
	LowPassCutoff    float64 `yaml:"low_pass_cutoff"`
}

// ScoreConfig holds the composite score weights.
type ScoreConfig struct {
	R2     float64 `yaml:"r2"`
	FWHM   float64 `yaml:"fwhm"`
	Center float64 `yaml:"center"`
}

// RegionConfig is one band-table window.
type RegionConfig struct {
	Name string  `yaml:"name"`
	Lo   float64 `yaml:"lo"`
	Hi   float64 `yaml:"hi"`
}

// Default returns the documented defaults for every knob.
func Default() Config {
	b := baseline.DefaultConfig()
	p := peaks.DefaultConfig()
	w := regional.DefaultScoreWeights()

	return Config{
		Baseline: BaselineConfig{
			Lambda:        b.Lambda,
			MaxIterations: b.MaxIterations,
			Tolerance:     b.Tolerance,
			Degree:        b.Degree,
			Anchors:       b.Anchors,
			MaskFactor:    b.MaskFactor,
		},
		Detection: DetectionConfig{
			HeightFactor:     p.HeightFactor,
			ProminenceFactor: p.ProminenceFactor,
			MinR2:            p.MinR2,
			FitHalfWidth:     p.FitHalfWidth,
		},
		Score:     ScoreConfig{R2: w.R2W, FWHM: w.FWHMW, Center: w.CenterW},
		Reference: normalize.MethodNone.String(),
	}
}

// Load reads a yaml file over the defaults. A missing path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints not covered by the stage
// validators.
func (c Config) Validate() error {
	if len(c.Regions) != 0 && len(c.Regions) != 7 {
		return ErrRegionCount
	}

	if _, err := normalize.ParseMethod(c.Reference); err != nil {
		return err
	}

	if _, err := c.RegionTable(); err != nil {
		return err
	}

	bc := c.BaselineSettings()
	for _, m := range baseline.Methods() {
		if err := bc.Validate(m); err != nil {
			return err
		}
	}

	return c.DetectionSettings().Validate()
}

// BaselineSettings maps onto the baseline package configuration.
func (c Config) BaselineSettings() baseline.Config {
	cfg := baseline.DefaultConfig()

	cfg.Lambda = c.Baseline.Lambda
	cfg.MaxIterations = c.Baseline.MaxIterations
	cfg.Tolerance = c.Baseline.Tolerance
	cfg.Degree = c.Baseline.Degree
	cfg.Anchors = c.Baseline.Anchors
	cfg.MaskFactor = c.Baseline.MaskFactor

	return cfg
}

// DetectionSettings maps onto the peaks package configuration.
func (c Config) DetectionSettings() peaks.Config {
	return peaks.Config{
		HeightFactor:     c.Detection.HeightFactor,
		ProminenceFactor: c.Detection.ProminenceFactor,
		MinR2:            c.Detection.MinR2,
		FitHalfWidth:     c.Detection.FitHalfWidth,
		MaxPeaks:         c.Detection.MaxPeaks,
		SmoothingWindow:  c.Detection.SmoothingWindow,
		LowPassCutoff:    c.Detection.LowPassCutoff,
	}
}

// RegionTable returns the configured band table, or the default table when
// no override is present.
func (c Config) RegionTable() (region.Table, error) {
	if len(c.Regions) == 0 {
		return region.DefaultTable(), nil
	}

	windows := make([]region.Window, len(c.Regions))
	for i, r := range c.Regions {
		windows[i] = region.Window{Name: r.Name, Lo: r.Lo, Hi: r.Hi}
	}

	return region.NewTable(windows)
}

// SweepSettings assembles the sweep runner configuration.
func (c Config) SweepSettings() (sweep.Config, error) {
	table, err := c.RegionTable()
	if err != nil {
		return sweep.Config{}, err
	}

	return sweep.Config{
		Baseline: c.BaselineSettings(),
		Peaks:    c.DetectionSettings(),
		Regions:  table,
		Workers:  c.Workers,
	}, nil
}

// SummaryOptions assembles the aggregation options.
func (c Config) SummaryOptions() (regional.Options, error) {
	table, err := c.RegionTable()
	if err != nil {
		return regional.Options{}, err
	}

	ref, err := normalize.ParseMethod(c.Reference)
	if err != nil {
		return regional.Options{}, err
	}

	weights := regional.ScoreWeights{R2W: c.Score.R2, FWHMW: c.Score.FWHM, CenterW: c.Score.Center}
	if weights == (regional.ScoreWeights{}) {
		weights = regional.DefaultScoreWeights()
	}

	return regional.Options{Table: table, Weights: weights, Reference: ref}, nil
}
