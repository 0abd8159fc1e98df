package layout

import (
	"sort"

	"github.com/tsawler/ordina/model"
)

// ColumnConfig holds configuration for column detection
type ColumnConfig struct {
	// GapRatio is the fraction of page width a horizontal gap between
	// boundary x positions must exceed to split columns
	// Default: 0.10
	GapRatio float64

	// GapFloor is the minimum absolute gap in page units, so narrow pages
	// do not split on trivial gaps
	// Default: 50
	GapFloor float64

	// NoiseCeilingRatio caps believable gaps as a fraction of page width.
	// A gap wider than this is a detector or measurement anomaly and is
	// ignored rather than treated as a column split.
	// Default: 0.80
	NoiseCeilingRatio float64
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		GapRatio:          0.10,
		GapFloor:          50.0,
		NoiseCeilingRatio: 0.80,
	}
}

// ColumnDetector partitions a page into 1..N non-overlapping column ranges
// from the x positions of its accepted question boundaries.
type ColumnDetector struct {
	config ColumnConfig
}

// NewColumnDetector creates a column detector with default configuration
func NewColumnDetector() *ColumnDetector {
	return &ColumnDetector{config: DefaultColumnConfig()}
}

// NewColumnDetectorWithConfig creates a column detector with custom
// configuration
func NewColumnDetectorWithConfig(config ColumnConfig) *ColumnDetector {
	return &ColumnDetector{config: config}
}

// Detect partitions [0, pageWidth) into column ranges from boundary x
// positions. Deterministic and total: it always returns at least one range
// and never fails. Zero or one distinct x position yields a single column.
func (d *ColumnDetector) Detect(xs []float64, pageWidth float64) []model.ColumnRange {
	if pageWidth <= 0 {
		pageWidth = 0
	}

	distinct := distinctSorted(xs)
	if len(distinct) <= 1 {
		return []model.ColumnRange{{Index: 0, StartX: 0, EndX: pageWidth}}
	}

	threshold := pageWidth * d.config.GapRatio
	if threshold < d.config.GapFloor {
		threshold = d.config.GapFloor
	}
	ceiling := pageWidth * d.config.NoiseCeilingRatio

	// Split points sit at the midpoint of each triggering gap. The first
	// range starts at 0 and the last ends at pageWidth.
	var splits []float64
	for i := 0; i < len(distinct)-1; i++ {
		gap := distinct[i+1] - distinct[i]
		if gap > threshold && gap <= ceiling {
			splits = append(splits, distinct[i]+gap/2)
		}
	}

	ranges := make([]model.ColumnRange, 0, len(splits)+1)
	start := 0.0
	for i, split := range splits {
		ranges = append(ranges, model.ColumnRange{Index: i, StartX: start, EndX: split})
		start = split
	}
	ranges = append(ranges, model.ColumnRange{Index: len(splits), StartX: start, EndX: pageWidth})

	return ranges
}

// distinctSorted returns the distinct values of xs in ascending order
func distinctSorted(xs []float64) []float64 {
	if len(xs) == 0 {
		return nil
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	distinct := sorted[:1]
	for _, x := range sorted[1:] {
		if x != distinct[len(distinct)-1] {
			distinct = append(distinct, x)
		}
	}
	return distinct
}
