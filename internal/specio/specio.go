// Package specio discovers and parses spectrum files.
//
// Supported inputs are two-column text files (wavenumber, intensity) with
// comma, semicolon, tab or whitespace separation. Header lines and comment
// lines are skipped automatically; the parsed columns are validated by the
// spectrum package, so malformed files surface the same error taxonomy as
// any other invalid spectrum.
package specio

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/AntonioSales254/Zircon-Geochronology-Raman-Spectral-Preprocessing/spectrum"
)

// Errors returned by discovery and parsing.
var (
	ErrNoFiles = errors.New("specio: no spectrum files found")
	ErrNoData  = errors.New("specio: no data rows found")
)

// Discover returns all spectrum files (.csv or .txt) directly under dir,
// sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("specio: %w", err)
	}

	var files []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".txt":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}

	sort.Strings(files)

	return files, nil
}

// Load reads and validates one spectrum file.
func Load(path string) (*spectrum.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("specio: %w", err)
	}
	defer f.Close()

	var wavenumber, intensity []float64

	scanner := bufio.NewScanner(f)
	line := 0

	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "//") {
			continue
		}

		w, y, ok := parseRow(text)
		if !ok {
			// Tolerate a header row, but only before any data.
			if len(wavenumber) == 0 {
				continue
			}

			return nil, fmt.Errorf("specio: %s:%d: unparseable row %q", path, line, text)
		}

		wavenumber = append(wavenumber, w)
		intensity = append(intensity, y)
	}

	err = scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("specio: %w", err)
	}

	if len(wavenumber) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoData, path)
	}

	s, err := spectrum.New(wavenumber, intensity)
	if err != nil {
		return nil, fmt.Errorf("specio: %s: %w", path, err)
	}

	return s, nil
}

// parseRow splits one data row on the first separator that yields at least
// two numeric fields.
func parseRow(text string) (w, y float64, ok bool) {
	for _, sep := range []string{",", ";", "\t"} {
		if fields := splitClean(text, sep); len(fields) >= 2 {
			return parseFields(fields)
		}
	}

	if fields := strings.Fields(text); len(fields) >= 2 {
		return parseFields(fields)
	}

	return 0, 0, false
}

func splitClean(text, sep string) []string {
	if !strings.Contains(text, sep) {
		return nil
	}

	parts := strings.Split(text, sep)

	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func parseFields(fields []string) (w, y float64, ok bool) {
	w, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, false
	}

	y, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, false
	}

	return w, y, true
}
