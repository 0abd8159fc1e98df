package model

import "strconv"

// BoundaryType represents the kind of numbering mark a boundary was
// extracted from
type BoundaryType int

const (
	// BoundaryQuestionNumber marks a top-level question number
	BoundaryQuestionNumber BoundaryType = iota
	// BoundarySubQuestionNumber marks a sub-question number within a question
	BoundarySubQuestionNumber
	// BoundaryQuestionType marks a question-type label (e.g. a section or
	// format heading printed beside the numbering)
	BoundaryQuestionType
)

// String returns a human-readable representation of the boundary type
func (bt BoundaryType) String() string {
	switch bt {
	case BoundaryQuestionNumber:
		return "question_number"
	case BoundarySubQuestionNumber:
		return "sub_question_number"
	case BoundaryQuestionType:
		return "question_type"
	default:
		return "unknown"
	}
}

// QuestionBoundary is one accepted numbering mark on a page. Boundaries are
// created during extraction and recognition and are read-only afterward.
// Identifier is the value as recognized; sequence recovery may propose a
// corrected value, but the original is always retained here for audit.
type QuestionBoundary struct {
	// Identifier is the extracted numeric identifier, pre-correction
	Identifier string

	// Type is the kind of numbering mark
	Type BoundaryType

	// BBox is the source region's bounding box; its origin is the
	// boundary's position for spatial assignment
	BBox BBox

	// SourceRegionID is the ID of the region the boundary was extracted from
	SourceRegionID string

	// RawText is the region's recognized text, trimmed only
	RawText string

	// PatternScore is the score of the pattern tier that matched
	PatternScore float64

	// Confidence is the combined acceptance confidence
	Confidence float64
}

// Position returns the x,y origin of the boundary's box
func (b QuestionBoundary) Position() Point {
	return Point{X: b.BBox.X, Y: b.BBox.Y}
}

// Numeric parses the identifier as an integer. The second return value is
// false for non-numeric identifiers.
func (b QuestionBoundary) Numeric() (int, bool) {
	n, err := strconv.Atoi(b.Identifier)
	if err != nil {
		return 0, false
	}
	return n, true
}
