package model

// ColumnRange is one detected column of the page. A page's column ranges are
// contiguous, non-overlapping, ordered by StartX, and together cover
// [0, pageWidth).
type ColumnRange struct {
	// Index is the 0-based column index, ascending by StartX
	Index int

	// StartX is the inclusive left edge of the column
	StartX float64

	// EndX is the exclusive right edge of the column
	EndX float64
}

// Contains reports whether x falls inside the column range
func (c ColumnRange) Contains(x float64) bool {
	return x >= c.StartX && x < c.EndX
}

// Width returns the width of the column range
func (c ColumnRange) Width() float64 {
	return c.EndX - c.StartX
}

// ColumnIndexOf returns the index of the column range containing x.
// X positions outside every range (possible only for out-of-page
// coordinates) are clamped to the nearest column.
func ColumnIndexOf(columns []ColumnRange, x float64) int {
	if len(columns) == 0 {
		return 0
	}
	for _, c := range columns {
		if c.Contains(x) {
			return c.Index
		}
	}
	if x < columns[0].StartX {
		return columns[0].Index
	}
	return columns[len(columns)-1].Index
}
