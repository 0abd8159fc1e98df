package assign

import (
	"math"
	"strings"

	"github.com/tsawler/ordina/model"
)

// Config holds configuration for spatial assignment
type Config struct {
	// BaseThreshold is the acceptance distance for ordinary regions
	// Default: 500
	BaseThreshold float64

	// LargeBaseThreshold replaces BaseThreshold for large regions, which
	// sit further from their numbering mark by nature
	// Default: 800
	LargeBaseThreshold float64

	// LargeAreaThreshold is the box area at which a region counts as large
	// Default: 600000
	LargeAreaThreshold float64

	// BelowWeight scales distances to boundaries above the region, the
	// expected reading direction
	// Default: 0.7
	BelowWeight float64

	// AboveWeight penalizes distances to boundaries below the region
	// Default: 1.5
	AboveWeight float64

	// SparseBoundaryCount and DenseBoundaryCount bound the density scale:
	// sparse pages (essay-style) loosen the threshold, dense pages
	// tighten it
	// Defaults: 5 and 80
	SparseBoundaryCount int
	DenseBoundaryCount  int

	// SparseScale and DenseScale are the corresponding multipliers
	// Defaults: 1.2 and 0.8
	SparseScale float64
	DenseScale  float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		BaseThreshold:       500,
		LargeBaseThreshold:  800,
		LargeAreaThreshold:  600000,
		BelowWeight:         0.7,
		AboveWeight:         1.5,
		SparseBoundaryCount: 5,
		DenseBoundaryCount:  80,
		SparseScale:         1.2,
		DenseScale:          0.8,
	}
}

// heavyClasses are visually-heavy layout classes that get the large-region
// threshold regardless of measured area.
var heavyClasses = map[string]struct{}{
	"figure":    {},
	"table":     {},
	"equation":  {},
	"flowchart": {},
}

// Assignment is the result of assigning one region to its owning boundary.
type Assignment struct {
	// Region is the assigned region
	Region model.Region

	// BoundaryIndex is the index of the owning boundary in the candidate
	// slice, or -1 when the region is unassigned
	BoundaryIndex int

	// Identifier is the owning boundary's identifier, empty when unassigned
	Identifier string

	// ColumnIndex is the column of the owning boundary
	ColumnIndex int

	// Distance is the weighted distance to the owning boundary
	Distance float64
}

// Assigned reports whether the region found an owner
func (a Assignment) Assigned() bool {
	return a.BoundaryIndex >= 0
}

// Assigner assigns regions to their nearest question boundary using
// weighted 2D distance. It is a pure function of its inputs: no I/O, no
// mutation, safe to call concurrently for every region on a page.
type Assigner struct {
	config Config
}

// New creates an assigner with default configuration
func New() *Assigner {
	return &Assigner{config: DefaultConfig()}
}

// NewWithConfig creates an assigner with custom configuration
func NewWithConfig(config Config) *Assigner {
	return &Assigner{config: config}
}

// Assign finds the boundary owning the region, or reports it unassigned
// when the best weighted distance exceeds the adaptive threshold. All
// boundaries on the page are candidates; column membership only tags the
// result. Ties break to the numerically smallest identifier.
func (a *Assigner) Assign(region model.Region, boundaries []model.QuestionBoundary, columns []model.ColumnRange) Assignment {
	unassigned := Assignment{Region: region, BoundaryIndex: -1}
	if len(boundaries) == 0 {
		return unassigned
	}

	centroid := region.Centroid()

	best := -1
	bestDistance := 0.0
	for i, b := range boundaries {
		d := a.weightedDistance(centroid, b.Position())
		switch {
		case best < 0 || d < bestDistance:
			best = i
			bestDistance = d
		case d == bestDistance && smallerIdentifier(boundaries[i], boundaries[best]):
			best = i
		}
	}

	if bestDistance > a.threshold(region, len(boundaries)) {
		return unassigned
	}

	owner := boundaries[best]
	return Assignment{
		Region:        region,
		BoundaryIndex: best,
		Identifier:    owner.Identifier,
		ColumnIndex:   model.ColumnIndexOf(columns, owner.BBox.X),
		Distance:      bestDistance,
	}
}

// AssignAll assigns every region in order. Results line up with the input
// slice index for index.
func (a *Assigner) AssignAll(regions []model.Region, boundaries []model.QuestionBoundary, columns []model.ColumnRange) []Assignment {
	assignments := make([]Assignment, len(regions))
	for i, region := range regions {
		assignments[i] = a.Assign(region, boundaries, columns)
	}
	return assignments
}

// weightedDistance scales the Euclidean distance by reading direction:
// regions below their boundary are favored, regions above are penalized.
func (a *Assigner) weightedDistance(region, boundary model.Point) float64 {
	dx := region.X - boundary.X
	dy := region.Y - boundary.Y
	euclidean := math.Sqrt(dx*dx + dy*dy)

	if dy >= 0 {
		return euclidean * a.config.BelowWeight
	}
	return euclidean * a.config.AboveWeight
}

// threshold computes the adaptive acceptance threshold for a region given
// the page's boundary density.
func (a *Assigner) threshold(region model.Region, boundaryCount int) float64 {
	base := a.config.BaseThreshold
	if a.isLarge(region) {
		base = a.config.LargeBaseThreshold
	}

	switch {
	case boundaryCount <= a.config.SparseBoundaryCount:
		return base * a.config.SparseScale
	case boundaryCount >= a.config.DenseBoundaryCount:
		return base * a.config.DenseScale
	default:
		return base
	}
}

// isLarge reports whether the region gets the large-region threshold, by
// area or by visually-heavy class.
func (a *Assigner) isLarge(region model.Region) bool {
	if region.BBox.Area() >= a.config.LargeAreaThreshold {
		return true
	}
	_, heavy := heavyClasses[strings.ToLower(strings.TrimSpace(region.Class))]
	return heavy
}

// smallerIdentifier orders boundaries for deterministic tie-breaking:
// numerically when both identifiers parse, lexically otherwise.
func smallerIdentifier(a, b model.QuestionBoundary) bool {
	an, aok := a.Numeric()
	bn, bok := b.Numeric()
	if aok && bok {
		return an < bn
	}
	if aok != bok {
		return aok // numeric identifiers sort before non-numeric
	}
	return a.Identifier < b.Identifier
}
