package model

// CorrectionLog records one decision made during numbering-sequence
// validation. Kind is a stable, machine-checkable reason string; Message is
// free-form detail for humans.
type CorrectionLog struct {
	Kind    string
	Message string
}

// CorrectionResult is the outcome of walking a page's accepted numbering
// sequence. It is produced once per page and consumed during assembly to
// relabel grouping keys; source boundaries are never mutated.
type CorrectionResult struct {
	// OCRCorrections maps a raw identifier to its proposed corrected
	// identifier for likely digit-confusion errors
	OCRCorrections map[string]string

	// RecoveredQuestions holds inferred missing integer identifiers in
	// ascending order. Informational only: nothing is synthesized for them.
	RecoveredQuestions []int

	// Logs is the ordered decision trail
	Logs []CorrectionLog
}

// IsEmpty reports whether the walk found nothing to flag
func (r CorrectionResult) IsEmpty() bool {
	return len(r.OCRCorrections) == 0 && len(r.RecoveredQuestions) == 0
}

// Corrected returns the corrected identifier for raw, or raw itself when no
// correction was proposed.
func (r CorrectionResult) Corrected(raw string) string {
	if corrected, ok := r.OCRCorrections[raw]; ok {
		return corrected
	}
	return raw
}
