package seat

import (
	"testing"

	"sahelbus/internal/domain"
)

func mustLayout(t *testing.T, rows, columns int) Layout {
	t.Helper()
	l, err := NewLayout(rows, columns)
	if err != nil {
		t.Fatalf("new layout %dx%d: %v", rows, columns, err)
	}
	return l
}

func TestNewLayoutAllAvailable(t *testing.T) {
	l := mustLayout(t, 7, 2)
	if l.Capacity() != 14 {
		t.Fatalf("capacity: got %d want 14", l.Capacity())
	}
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Columns; c++ {
			st, err := l.At(r, c)
			if err != nil {
				t.Fatalf("at (%d,%d): %v", r, c, err)
			}
			if st != StatusAvailable {
				t.Fatalf("cell (%d,%d): got %q want available", r, c, st)
			}
		}
	}
}

func TestNewLayoutRejectsBadDimensions(t *testing.T) {
	for _, dim := range [][2]int{{0, 2}, {7, 0}, {-1, 2}, {7, 27}} {
		if _, err := NewLayout(dim[0], dim[1]); !domain.IsValidation(err) {
			t.Fatalf("layout %dx%d: expected validation error, got %v", dim[0], dim[1], err)
		}
	}
}

func TestProjectOverlaysWithoutTouchingBaseline(t *testing.T) {
	baseline := mustLayout(t, 4, 2)

	projected, err := Project(1, baseline, []string{"1A", "3B"})
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	if st, _ := projected.At(0, 0); st != StatusReserved {
		t.Fatalf("1A: got %q want reserved", st)
	}
	if st, _ := projected.At(2, 1); st != StatusReserved {
		t.Fatalf("3B: got %q want reserved", st)
	}
	if st, _ := projected.At(0, 1); st != StatusAvailable {
		t.Fatalf("1B: got %q want available", st)
	}

	// The baseline stays all-available.
	for r := 0; r < baseline.Rows; r++ {
		for c := 0; c < baseline.Columns; c++ {
			if st, _ := baseline.At(r, c); st != StatusAvailable {
				t.Fatalf("baseline mutated at (%d,%d): %q", r, c, st)
			}
		}
	}
}

func TestProjectDeterministic(t *testing.T) {
	baseline := mustLayout(t, 4, 2)
	labels := []string{"2A", "1B", "4B"}

	first, err := Project(1, baseline, labels)
	if err != nil {
		t.Fatalf("first project: %v", err)
	}
	second, err := Project(1, baseline, labels)
	if err != nil {
		t.Fatalf("second project: %v", err)
	}
	for r := 0; r < baseline.Rows; r++ {
		for c := 0; c < baseline.Columns; c++ {
			a, _ := first.At(r, c)
			b, _ := second.At(r, c)
			if a != b {
				t.Fatalf("projection differs at (%d,%d): %q vs %q", r, c, a, b)
			}
		}
	}
}

func TestProjectOutOfBoundsLabelIsCorruption(t *testing.T) {
	baseline := mustLayout(t, 4, 2)

	if _, err := Project(1, baseline, []string{"5A"}); !domain.IsInventoryCorruption(err) {
		t.Fatalf("row past grid: expected corruption, got %v", err)
	}
	if _, err := Project(1, baseline, []string{"1C"}); !domain.IsInventoryCorruption(err) {
		t.Fatalf("column past grid: expected corruption, got %v", err)
	}
	if _, err := Project(1, baseline, []string{"??"}); !domain.IsInventoryCorruption(err) {
		t.Fatalf("unparseable label: expected corruption, got %v", err)
	}
}
