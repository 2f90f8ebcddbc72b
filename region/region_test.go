package region

import (
	"errors"
	"testing"
)

func TestDefaultTableShape(t *testing.T) {
	tab := DefaultTable()

	if tab.Len() != 7 {
		t.Fatalf("expected 7 windows, got %d", tab.Len())
	}

	names := tab.Names()
	if names[len(names)-1] != "nu3(SiO4)" {
		t.Fatalf("expected nu3(SiO4) as highest window, got %s", names[len(names)-1])
	}
}

func TestClassify(t *testing.T) {
	tab := DefaultTable()

	tests := []struct {
		center float64
		want   string
		ok     bool
	}{
		{1008, "nu3(SiO4)", true},
		{974, "nu1(SiO4)", true},
		{439, "nu2(SiO4)", true},
		{202, "External1", true},
		{357, "External2", true},
		{400, "External3", true},
		{546, "External4", true},
		{700, Unassigned, false},
		{0, Unassigned, false},
		{5000, Unassigned, false},
	}

	for _, tt := range tests {
		got, ok := tab.Classify(tt.center)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("Classify(%g) = (%s, %v), want (%s, %v)", tt.center, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBoundaryRule(t *testing.T) {
	tab := DefaultTable()

	// Shared boundary at 420: lower-inclusive means 420 belongs to the
	// upper window.
	if got, _ := tab.Classify(420); got != "nu2(SiO4)" {
		t.Fatalf("420 must classify into nu2(SiO4), got %s", got)
	}

	// Upper bound is exclusive.
	if got, ok := tab.Classify(1020); ok {
		t.Fatalf("1020 must be unassigned, got %s", got)
	}

	// Lower bound is inclusive.
	if got, _ := tab.Classify(990); got != "nu3(SiO4)" {
		t.Fatalf("990 must classify into nu3(SiO4), got %s", got)
	}

	if got, _ := tab.Classify(989.999999); got != "nu1(SiO4)" {
		t.Fatalf("989.999999 must classify into nu1(SiO4), got %s", got)
	}
}

func TestNewTableValidation(t *testing.T) {
	if _, err := NewTable(nil); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable, got %v", err)
	}

	if _, err := NewTable([]Window{{Name: "a", Lo: 5, Hi: 5}}); !errors.Is(err, ErrBadWindow) {
		t.Fatalf("expected ErrBadWindow, got %v", err)
	}

	_, err := NewTable([]Window{
		{Name: "a", Lo: 0, Hi: 10},
		{Name: "b", Lo: 5, Hi: 15},
	})
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}

	_, err = NewTable([]Window{
		{Name: "a", Lo: 0, Hi: 10},
		{Name: "a", Lo: 20, Hi: 30},
	})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestTouchingWindowsAllowed(t *testing.T) {
	tab, err := NewTable([]Window{
		{Name: "low", Lo: 0, Hi: 10},
		{Name: "high", Lo: 10, Hi: 20},
	})
	if err != nil {
		t.Fatalf("touching windows must be valid: %v", err)
	}

	if got, _ := tab.Classify(10); got != "high" {
		t.Fatalf("boundary value must land in the upper window, got %s", got)
	}
}
