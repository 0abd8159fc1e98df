package model

// Region is one detected layout region on a scanned page, as produced by an
// upstream layout detector and optionally enriched by text recognition and
// vision description services. Regions are immutable once produced; the
// analysis pipeline never modifies them.
type Region struct {
	// ID is an opaque identifier, stable within a page
	ID string

	// Class is the free-form layout label assigned by the detector
	// (e.g. "figure", "question_number", "list")
	Class string

	// BBox is the region's bounding box in page coordinates
	BBox BBox

	// DetectorConfidence is the detector's confidence in [0,1]
	DetectorConfidence float64

	// Text is the recognized text for the region, empty if the region was
	// never sent to text recognition
	Text string

	// TextConfidence is the recognition confidence in [0,1], meaningful
	// only when Text is non-empty
	TextConfidence float64

	// Description is a generated natural-language description for visual
	// regions, empty if none was produced
	Description string

	// DescriptionConfidence is the description confidence in [0,1],
	// meaningful only when Description is non-empty
	DescriptionConfidence float64
}

// HasText reports whether the region carries recognized text
func (r Region) HasText() bool {
	return r.Text != ""
}

// HasDescription reports whether the region carries a generated description
func (r Region) HasDescription() bool {
	return r.Description != ""
}

// Centroid returns the center point of the region's bounding box
func (r Region) Centroid() Point {
	return r.BBox.Centroid()
}

// Page is the full input for one page-processing call: the detected regions
// plus the page dimensions. Each page is analyzed independently; callers
// processing multi-page documents run one analysis per page and concatenate
// the results.
type Page struct {
	Number  int // 1-indexed page number, informational
	Width   float64
	Height  float64
	Regions []Region
}
