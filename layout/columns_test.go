package layout

import (
	"testing"

	"github.com/tsawler/ordina/model"
)

// checkPartition verifies the column partition invariant: ordered by StartX,
// contiguous, non-overlapping, spanning exactly [0, pageWidth).
func checkPartition(t *testing.T, columns []model.ColumnRange, pageWidth float64) {
	t.Helper()

	if len(columns) == 0 {
		t.Fatal("detector must always return at least one range")
	}
	if columns[0].StartX != 0 {
		t.Errorf("first range starts at %v, want 0", columns[0].StartX)
	}
	if columns[len(columns)-1].EndX != pageWidth {
		t.Errorf("last range ends at %v, want %v", columns[len(columns)-1].EndX, pageWidth)
	}
	for i, c := range columns {
		if c.Index != i {
			t.Errorf("range %d has index %d", i, c.Index)
		}
		if c.StartX >= c.EndX {
			t.Errorf("range %d is degenerate: [%v, %v)", i, c.StartX, c.EndX)
		}
		if i > 0 && c.StartX != columns[i-1].EndX {
			t.Errorf("range %d is not contiguous with its predecessor", i)
		}
	}
}

func TestDetectNoBoundaries(t *testing.T) {
	d := NewColumnDetector()

	columns := d.Detect(nil, 1000)
	checkPartition(t, columns, 1000)
	if len(columns) != 1 {
		t.Errorf("expected single column, got %d", len(columns))
	}
}

func TestDetectSingleX(t *testing.T) {
	d := NewColumnDetector()

	columns := d.Detect([]float64{100, 100, 100}, 1000)
	checkPartition(t, columns, 1000)
	if len(columns) != 1 {
		t.Errorf("expected single column for one distinct x, got %d", len(columns))
	}
}

func TestDetectTwoColumns(t *testing.T) {
	d := NewColumnDetector()

	// Boundaries at x=100 and x=600 on a 1000-wide page: the 500 gap
	// exceeds the 100 threshold, splitting at the midpoint 350.
	columns := d.Detect([]float64{100, 100, 600, 600}, 1000)
	checkPartition(t, columns, 1000)

	if len(columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(columns))
	}
	if columns[0].EndX != 350 {
		t.Errorf("split point = %v, want midpoint 350", columns[0].EndX)
	}
}

func TestDetectThreeColumns(t *testing.T) {
	d := NewColumnDetector()

	columns := d.Detect([]float64{50, 400, 750}, 1000)
	checkPartition(t, columns, 1000)
	if len(columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(columns))
	}
	if columns[0].EndX != 225 || columns[1].EndX != 575 {
		t.Errorf("split points = %v, %v; want 225, 575", columns[0].EndX, columns[1].EndX)
	}
}

func TestDetectSubThresholdGapsStaySingle(t *testing.T) {
	d := NewColumnDetector()

	// Gaps of 80 on a 1000-wide page stay below the 100 threshold:
	// question numbers at slightly different indents, not columns.
	columns := d.Detect([]float64{100, 180, 260}, 1000)
	checkPartition(t, columns, 1000)
	if len(columns) != 1 {
		t.Errorf("expected single column, got %d", len(columns))
	}
}

func TestDetectGapFloorOnSmallPages(t *testing.T) {
	d := NewColumnDetector()

	// 10% of a 300-wide page is 30, but the 50-unit floor applies: a 40
	// gap must not split.
	columns := d.Detect([]float64{100, 140}, 300)
	checkPartition(t, columns, 300)
	if len(columns) != 1 {
		t.Errorf("gap below the floor should not split, got %d columns", len(columns))
	}

	// A 60 gap clears the floor.
	columns = d.Detect([]float64{100, 160}, 300)
	checkPartition(t, columns, 300)
	if len(columns) != 2 {
		t.Errorf("gap above the floor should split, got %d columns", len(columns))
	}
}

func TestDetectNoiseCeiling(t *testing.T) {
	d := NewColumnDetector()

	// A gap spanning 85% of the page width is a measurement anomaly,
	// not a column split.
	columns := d.Detect([]float64{50, 900}, 1000)
	checkPartition(t, columns, 1000)
	if len(columns) != 1 {
		t.Errorf("gap above the noise ceiling should be ignored, got %d columns", len(columns))
	}
}

func TestDetectDeterministic(t *testing.T) {
	d := NewColumnDetector()

	// Input order must not matter
	a := d.Detect([]float64{600, 100, 350, 610}, 1000)
	b := d.Detect([]float64{100, 350, 600, 610}, 1000)

	if len(a) != len(b) {
		t.Fatalf("different column counts: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("range %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
