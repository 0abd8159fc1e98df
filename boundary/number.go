package boundary

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Pattern tier scores. Tiers are evaluated strictly in order; the first
// match wins.
const (
	scoreCanonical = 1.0 // exact canonical numbering forms
	scorePrefixed  = 0.9 // Q-prefixed forms
	scoreNoisy     = 0.8 // canonical forms with trailing recognition noise
	scoreBare      = 0.6 // bare 2-3 digit numerals, no surrounding marker
)

// RecognizerConfig holds configuration for number recognition
type RecognizerConfig struct {
	// AcceptThreshold is the minimum combined confidence for a boundary
	// to be accepted
	// Default: 0.70
	AcceptThreshold float64

	// AllowBareNumbers enables the bare-numeral tier (2-3 digit numbers
	// with no surrounding marker). Intended for densely numbered
	// documents; carries a higher false-positive risk.
	// Default: false
	AllowBareNumbers bool

	// DetectorWeight, TextWeight and PatternWeight combine the three
	// signals into the acceptance confidence. They should sum to 1 so
	// that equal inputs produce an equal output.
	// Defaults: 0.5, 0.3, 0.2
	DetectorWeight float64
	TextWeight     float64
	PatternWeight  float64
}

// DefaultRecognizerConfig returns sensible default configuration
func DefaultRecognizerConfig() RecognizerConfig {
	return RecognizerConfig{
		AcceptThreshold:  0.70,
		AllowBareNumbers: false,
		DetectorWeight:   0.5,
		TextWeight:       0.3,
		PatternWeight:    0.2,
	}
}

// Extraction is the result of recognizing a numbering mark in noisy text
type Extraction struct {
	// Identifier is the bare numeric identifier
	Identifier string

	// PatternScore is the score of the tier that matched
	PatternScore float64

	// Confidence is the weighted combination of detector confidence,
	// recognition confidence, and pattern score
	Confidence float64
}

// NumberRecognizer extracts bare numeric identifiers from noisy recognized
// text via tiered pattern matching, and scores each extraction for
// acceptance.
type NumberRecognizer struct {
	config RecognizerConfig
}

// NewNumberRecognizer creates a recognizer with default configuration
func NewNumberRecognizer() *NumberRecognizer {
	return &NumberRecognizer{config: DefaultRecognizerConfig()}
}

// NewNumberRecognizerWithConfig creates a recognizer with custom configuration
func NewNumberRecognizerWithConfig(config RecognizerConfig) *NumberRecognizer {
	return &NumberRecognizer{config: config}
}

// Pattern tables are pure lookup data, compiled once at package init.
// Full-width digits and punctuation are folded to their ASCII forms by NFKC
// normalization during cleanup, so the patterns only need ASCII variants.
var (
	// Annotation guard: numerals adjacent to answer/score tokens are
	// scoring annotations, never question numbers.
	annotationPattern = regexp.MustCompile(`(?i)(정답|배점|답|answer|score)\s*[0-9]|[0-9]+\s*(점|pts?|points?)`)

	canonicalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^([0-9]{1,3})번$`),
		regexp.MustCompile(`^([0-9]{1,3})\.$`),
		regexp.MustCompile(`^문제\s?([0-9]{1,3})$`),
		regexp.MustCompile(`^([0-9]{1,3})\)$`),
	}

	prefixedPattern = regexp.MustCompile(`^[Qq]\s?([0-9]{1,3})$`)

	// Canonical forms followed by leftover symbols the cleanup pass did
	// not absorb. The leading digits must still be unambiguous.
	noisyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^([0-9]{1,3})번[^0-9A-Za-z가-힣]*$`),
		regexp.MustCompile(`^([0-9]{1,3})\.[^0-9A-Za-z가-힣]*$`),
		regexp.MustCompile(`^([0-9]{1,3})\)[^0-9A-Za-z가-힣]*$`),
	}

	barePattern = regexp.MustCompile(`^([0-9]{2,3})$`)

	multiDotPattern = regexp.MustCompile(`\.{2,}`)
	dotNoisePattern = regexp.MustCompile(`([0-9])[ \t.]*\.[ \t.]*`)
	spaceRunPattern = regexp.MustCompile(`\s+`)
)

// Clean normalizes noisy recognized text: NFKC folding of full-width forms,
// trimming, collapsing runs of dots and any interleaving of whitespace and
// dots around a numeral into a single trailing dot, and collapsing
// whitespace runs into one space. Empty input yields the empty string.
func Clean(raw string) string {
	cleaned, _ := cleanText(raw)
	return cleaned
}

// cleanText also reports whether dot-noise collapsing changed the text,
// which demotes an otherwise canonical match to the noisy tier.
func cleanText(raw string) (string, bool) {
	s := strings.TrimSpace(norm.NFKC.String(raw))
	if s == "" {
		return "", false
	}

	before := s
	s = multiDotPattern.ReplaceAllString(s, ".")
	s = dotNoisePattern.ReplaceAllString(s, "$1.")
	collapsed := s != before

	s = spaceRunPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s), collapsed
}

// Extract cleans rawText, matches it against the pattern tiers, and computes
// the combined acceptance confidence. The second return value is false when
// no tier matched, the annotation guard fired, or the confidence fell below
// the acceptance threshold. There is no error path: absence of a match
// simply yields no extraction.
func (r *NumberRecognizer) Extract(rawText string, detectorConfidence, recognitionConfidence float64) (Extraction, bool) {
	cleaned, collapsed := cleanText(rawText)
	if cleaned == "" {
		return Extraction{}, false
	}

	if annotationPattern.MatchString(cleaned) {
		return Extraction{}, false
	}

	identifier, score, ok := matchTiers(cleaned, collapsed, r.config.AllowBareNumbers)
	if !ok {
		return Extraction{}, false
	}

	confidence := r.config.DetectorWeight*detectorConfidence +
		r.config.TextWeight*recognitionConfidence +
		r.config.PatternWeight*score

	// Tolerance guards against float rounding at the exact threshold
	if confidence < r.config.AcceptThreshold-1e-9 {
		return Extraction{}, false
	}

	return Extraction{
		Identifier:   identifier,
		PatternScore: score,
		Confidence:   confidence,
	}, true
}

// ExtractLabel recognizes a textual label mark rather than a numeral: the
// cleaned text is the identifier and the detector class stands in for a
// canonical pattern match. The same confidence gate applies.
func (r *NumberRecognizer) ExtractLabel(rawText string, detectorConfidence, recognitionConfidence float64) (Extraction, bool) {
	cleaned, _ := cleanText(rawText)
	if cleaned == "" {
		return Extraction{}, false
	}

	confidence := r.config.DetectorWeight*detectorConfidence +
		r.config.TextWeight*recognitionConfidence +
		r.config.PatternWeight*scoreCanonical

	if confidence < r.config.AcceptThreshold-1e-9 {
		return Extraction{}, false
	}

	return Extraction{
		Identifier:   cleaned,
		PatternScore: scoreCanonical,
		Confidence:   confidence,
	}, true
}

// matchTiers runs the tiered pattern match over cleaned text. A canonical
// match whose raw text needed dot-noise collapsing is demoted to the noisy
// tier: the marker form survived cleanup, but the surrounding noise makes it
// less trustworthy than a pristine match.
func matchTiers(cleaned string, collapsed bool, allowBare bool) (string, float64, bool) {
	for _, p := range canonicalPatterns {
		if m := p.FindStringSubmatch(cleaned); m != nil {
			if collapsed {
				return m[1], scoreNoisy, true
			}
			return m[1], scoreCanonical, true
		}
	}

	if m := prefixedPattern.FindStringSubmatch(cleaned); m != nil {
		return m[1], scorePrefixed, true
	}

	for _, p := range noisyPatterns {
		if m := p.FindStringSubmatch(cleaned); m != nil {
			return m[1], scoreNoisy, true
		}
	}

	if allowBare {
		if m := barePattern.FindStringSubmatch(cleaned); m != nil {
			return m[1], scoreBare, true
		}
	}

	return "", 0, false
}

// MatchesMarker reports whether text looks like a question-numbering mark
// after cleanup, without regard to confidence. Useful for pre-labeling
// regions produced by sources that do not classify layout.
func MatchesMarker(text string) bool {
	cleaned, collapsed := cleanText(text)
	if cleaned == "" || annotationPattern.MatchString(cleaned) {
		return false
	}
	_, _, ok := matchTiers(cleaned, collapsed, false)
	return ok
}
