package boundary

import (
	"sort"
	"strings"

	"github.com/tsawler/ordina/model"
)

// numberingClasses is the whitelist of detector labels that mark a question
// or sub-question number. Labels are compared after lowercasing and trimming.
var numberingClasses = map[string]model.BoundaryType{
	"question_number":     model.BoundaryQuestionNumber,
	"sub_question_number": model.BoundarySubQuestionNumber,
	"question_type":       model.BoundaryQuestionType,
}

// legacyNumberingClasses are hyphen-separated spellings of the same concepts
// used by a previous labeling convention. Detectors still emit them from
// stale model snapshots; they are rejected outright rather than treated as
// numbering marks.
var legacyNumberingClasses = map[string]struct{}{
	"question-number":     {},
	"sub-question-number": {},
	"question-type":       {},
}

// Extractor filters detected regions down to question-boundary candidates
// and recognizes their numeric identifiers.
type Extractor struct {
	recognizer *NumberRecognizer
}

// NewExtractor creates an extractor with default recognition configuration
func NewExtractor() *Extractor {
	return &Extractor{recognizer: NewNumberRecognizer()}
}

// NewExtractorWithConfig creates an extractor with custom recognition
// configuration
func NewExtractorWithConfig(config RecognizerConfig) *Extractor {
	return &Extractor{recognizer: NewNumberRecognizerWithConfig(config)}
}

// candidateOf converts a region into a provisional boundary candidate.
// Returns false for regions that are not numbering marks: non-whitelisted
// classes, legacy spellings, missing text, or degenerate boxes.
func candidateOf(region model.Region) (model.QuestionBoundary, bool) {
	class := strings.ToLower(strings.TrimSpace(region.Class))

	if _, legacy := legacyNumberingClasses[class]; legacy {
		return model.QuestionBoundary{}, false
	}
	boundaryType, ok := numberingClasses[class]
	if !ok {
		return model.QuestionBoundary{}, false
	}
	if !region.BBox.IsValid() {
		return model.QuestionBoundary{}, false
	}

	text := strings.TrimSpace(region.Text)
	if text == "" {
		return model.QuestionBoundary{}, false
	}

	return model.QuestionBoundary{
		Identifier:     text, // provisional, pending recognition
		Type:           boundaryType,
		BBox:           region.BBox,
		SourceRegionID: region.ID,
		RawText:        text,
	}, true
}

// Candidates filters regions to provisional boundary candidates, sorted by
// vertical position. Identifiers are the trimmed raw text pending
// recognition; no confidence is attached yet. Never fails: regions that
// cannot be candidates are skipped.
func (e *Extractor) Candidates(regions []model.Region) []model.QuestionBoundary {
	var candidates []model.QuestionBoundary
	for _, region := range regions {
		if candidate, ok := candidateOf(region); ok {
			candidates = append(candidates, candidate)
		}
	}
	sortBoundaries(candidates)
	return candidates
}

// Extract produces the accepted boundaries for a page: candidates whose text
// yields a numeric identifier with sufficient combined confidence. Output is
// sorted by vertical position.
func (e *Extractor) Extract(regions []model.Region) []model.QuestionBoundary {
	var accepted []model.QuestionBoundary
	for _, region := range regions {
		candidate, ok := candidateOf(region)
		if !ok {
			continue
		}

		if candidate.Type == model.BoundaryQuestionType {
			// Type marks carry a textual label, not a numeral: the class
			// itself is the marker, so only the confidence gate applies.
			label, ok := e.recognizer.ExtractLabel(candidate.RawText, region.DetectorConfidence, region.TextConfidence)
			if !ok {
				continue
			}
			candidate.Identifier = label.Identifier
			candidate.PatternScore = label.PatternScore
			candidate.Confidence = label.Confidence
			accepted = append(accepted, candidate)
			continue
		}

		extraction, ok := e.recognizer.Extract(candidate.RawText, region.DetectorConfidence, region.TextConfidence)
		if !ok {
			continue
		}

		candidate.Identifier = extraction.Identifier
		candidate.PatternScore = extraction.PatternScore
		candidate.Confidence = extraction.Confidence
		accepted = append(accepted, candidate)
	}
	sortBoundaries(accepted)
	return accepted
}

// sortBoundaries orders boundaries by y ascending, breaking ties by x so
// identical inputs always produce identical order.
func sortBoundaries(boundaries []model.QuestionBoundary) {
	sort.SliceStable(boundaries, func(i, j int) bool {
		if boundaries[i].BBox.Y != boundaries[j].BBox.Y {
			return boundaries[i].BBox.Y < boundaries[j].BBox.Y
		}
		return boundaries[i].BBox.X < boundaries[j].BBox.X
	})
}
