// Package layout infers the column structure of a page from the x positions
// of its accepted question boundaries.
//
// The [ColumnDetector] clusters distinct x positions wherever the gap
// between neighbors exceeds an adaptive threshold (a fraction of the page
// width with an absolute floor) while staying under a noise ceiling that
// filters out measurement anomalies:
//
//	detector := layout.NewColumnDetector()
//	columns := detector.Detect(xs, pageWidth)
//
// The returned ranges are ordered by start position, contiguous,
// non-overlapping, and together cover [0, pageWidth). Detection is
// conservative: when the evidence is ambiguous the page stays a single
// column.
package layout
