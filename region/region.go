// Package region maps fitted peak centers onto the known zircon vibrational
// bands.
//
// The default table covers the seven windows used in zircon metamictization
// studies: the internal SiO4 stretching and bending modes (nu1, nu2, nu3)
// and four external lattice-mode windows. Windows are half-open: a center is
// assigned to [Lo, Hi), lower bound inclusive and upper bound exclusive,
// so a value sitting exactly on a shared boundary always lands in the upper
// window and classification stays deterministic.
package region

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by table construction.
var (
	ErrEmptyTable    = errors.New("region: table needs at least one window")
	ErrBadWindow     = errors.New("region: window bounds must satisfy lo < hi")
	ErrOverlap       = errors.New("region: windows overlap")
	ErrDuplicateName = errors.New("region: duplicate window name")
)

// Unassigned is the pseudo-region reported for centers outside every window.
const Unassigned = "Unassigned"

// Window is one named wavenumber interval [Lo, Hi) in cm^-1.
type Window struct {
	Name string
	Lo   float64
	Hi   float64
}

// Contains reports whether center falls inside the window. Lower bound
// inclusive, upper bound exclusive.
func (w Window) Contains(center float64) bool {
	return center >= w.Lo && center < w.Hi
}

// Table is an ordered, non-overlapping set of windows.
type Table struct {
	windows []Window
}

// DefaultTable returns the seven-window zircon band table.
//
// Band positions follow the well-characterized crystalline zircon spectrum:
// external lattice modes near 202/214/225 and 357 cm^-1, the 393 cm^-1
// mode, nu2 near 439, the 546 cm^-1 window, nu1 near 974 and the nu3
// antisymmetric SiO4 stretch near 1008 cm^-1 (the primary metamictization
// gauge).
func DefaultTable() Table {
	t, err := NewTable([]Window{
		{Name: "External1", Lo: 180, Hi: 240},
		{Name: "External2", Lo: 330, Hi: 380},
		{Name: "External3", Lo: 380, Hi: 420},
		{Name: "nu2(SiO4)", Lo: 420, Hi: 460},
		{Name: "External4", Lo: 530, Hi: 580},
		{Name: "nu1(SiO4)", Lo: 960, Hi: 990},
		{Name: "nu3(SiO4)", Lo: 990, Hi: 1020},
	})
	if err != nil {
		// The built-in table is statically correct.
		panic(err)
	}

	return t
}

// NewTable validates the windows and returns a Table sorted by lower bound.
func NewTable(windows []Window) (Table, error) {
	if len(windows) == 0 {
		return Table{}, ErrEmptyTable
	}

	sorted := make([]Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })

	seen := make(map[string]struct{}, len(sorted))

	for i, w := range sorted {
		if w.Lo >= w.Hi {
			return Table{}, fmt.Errorf("%w: %s [%g, %g)", ErrBadWindow, w.Name, w.Lo, w.Hi)
		}

		if _, dup := seen[w.Name]; dup {
			return Table{}, fmt.Errorf("%w: %s", ErrDuplicateName, w.Name)
		}
		seen[w.Name] = struct{}{}

		if i > 0 && w.Lo < sorted[i-1].Hi {
			return Table{}, fmt.Errorf("%w: %s and %s", ErrOverlap, sorted[i-1].Name, w.Name)
		}
	}

	return Table{windows: sorted}, nil
}

// Len returns the number of windows.
func (t Table) Len() int {
	return len(t.windows)
}

// Windows returns a copy of the window set in ascending order.
func (t Table) Windows() []Window {
	out := make([]Window, len(t.windows))
	copy(out, t.windows)

	return out
}

// Names returns the window names in ascending wavenumber order.
func (t Table) Names() []string {
	out := make([]string, len(t.windows))
	for i, w := range t.windows {
		out[i] = w.Name
	}

	return out
}

// Classify returns the name of the window containing center, or
// [Unassigned] with ok=false when no window contains it.
func (t Table) Classify(center float64) (name string, ok bool) {
	// Binary search over the sorted lower bounds.
	i := sort.Search(len(t.windows), func(i int) bool {
		return t.windows[i].Hi > center
	})

	if i < len(t.windows) && t.windows[i].Contains(center) {
		return t.windows[i].Name, true
	}

	return Unassigned, false
}
