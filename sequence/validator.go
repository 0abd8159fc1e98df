package sequence

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/tsawler/ordina/model"
)

// Correction log kinds. These are stable, machine-checkable reason strings.
const (
	KindRecoveredMissing = "recovered_missing"
	KindOCRCorrected     = "ocr_corrected"
	KindUncorrectable    = "uncorrectable"
	KindDuplicate        = "duplicate"
	KindNonNumeric       = "non_numeric"
)

// confusablePairs maps a digit to the digits it is commonly misread as by
// optical recognition. Pure lookup data; never mutated.
var confusablePairs = map[rune][]rune{
	'0': {'9'},
	'1': {'9'},
	'2': {'9'},
	'9': {'0', '1', '2'},
}

// Config holds configuration for sequence validation
type Config struct {
	// NearWindow is how far below its predecessor a corrected identifier
	// may land and still count as sequence-consistent. Accepted boundaries
	// from neighboring columns can interleave by a question or two, so a
	// strict monotonic test would reject valid repairs.
	// Default: 2
	NearWindow int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{NearWindow: 2}
}

// Validator walks a page's accepted numbering sequence, flagging missing
// numbers and proposing repairs for likely digit-confusion errors.
type Validator struct {
	config Config
}

// New creates a validator with default configuration
func New() *Validator {
	return &Validator{config: DefaultConfig()}
}

// NewWithConfig creates a validator with custom configuration
func NewWithConfig(config Config) *Validator {
	return &Validator{config: config}
}

// Validate walks consecutive pairs of the reading-ordered identifiers.
// Forward gaps record every skipped integer as recovered (informational
// only; nothing is synthesized). Reverse steps are treated as probable
// digit-confusion errors and repaired through the confusable table when a
// substitution restores consistency. Every decision is logged. A perfectly
// monotonic sequence yields an empty result; there are no error paths.
func (v *Validator) Validate(identifiers []string) model.CorrectionResult {
	result := model.CorrectionResult{}

	recovered := map[int]struct{}{}
	prev := 0
	havePrev := false

	for _, raw := range identifiers {
		curr, err := strconv.Atoi(raw)
		if err != nil {
			result.Logs = append(result.Logs, model.CorrectionLog{
				Kind:    KindNonNumeric,
				Message: fmt.Sprintf("identifier %q is not numeric, skipped", raw),
			})
			continue
		}

		if !havePrev {
			prev = curr
			havePrev = true
			continue
		}

		switch {
		case curr == prev:
			result.Logs = append(result.Logs, model.CorrectionLog{
				Kind:    KindDuplicate,
				Message: fmt.Sprintf("identifier %d repeats", curr),
			})

		case curr > prev+1:
			for missing := prev + 1; missing < curr; missing++ {
				recovered[missing] = struct{}{}
				result.Logs = append(result.Logs, model.CorrectionLog{
					Kind:    KindRecoveredMissing,
					Message: fmt.Sprintf("question %d missing between %d and %d", missing, prev, curr),
				})
			}
			prev = curr

		case curr < prev:
			corrected, ok := v.repair(prev, curr)
			if ok {
				if result.OCRCorrections == nil {
					result.OCRCorrections = map[string]string{}
				}
				correctedStr := strconv.Itoa(corrected)
				result.OCRCorrections[raw] = correctedStr
				result.Logs = append(result.Logs, model.CorrectionLog{
					Kind:    KindOCRCorrected,
					Message: fmt.Sprintf("identifier %q after %d corrected to %q by digit confusion", raw, prev, correctedStr),
				})
				prev = corrected
			} else {
				result.Logs = append(result.Logs, model.CorrectionLog{
					Kind:    KindUncorrectable,
					Message: fmt.Sprintf("identifier %d after %d breaks the sequence and no confusable substitution repairs it", curr, prev),
				})
				prev = curr
			}

		default: // curr == prev+1
			prev = curr
		}
	}

	if len(recovered) > 0 {
		result.RecoveredQuestions = make([]int, 0, len(recovered))
		for n := range recovered {
			result.RecoveredQuestions = append(result.RecoveredQuestions, n)
		}
		sort.Ints(result.RecoveredQuestions)
	}

	return result
}

// repair tries every single-digit confusable substitution in curr and picks
// the candidate most consistent with prev: one restoring monotonic increase
// if possible, otherwise one landing within the near window below prev.
func (v *Validator) repair(prev, curr int) (int, bool) {
	digits := []rune(strconv.Itoa(curr))

	best := 0
	bestOK := false
	for i, d := range digits {
		for _, sub := range confusablePairs[d] {
			candidate := make([]rune, len(digits))
			copy(candidate, digits)
			candidate[i] = sub

			n, err := strconv.Atoi(string(candidate))
			if err != nil || n == curr {
				continue
			}
			if !v.consistent(prev, n) {
				continue
			}
			if !bestOK || closerToNext(prev, n, best) {
				best = n
				bestOK = true
			}
		}
	}
	return best, bestOK
}

// consistent reports whether a corrected value fits the sequence after prev
func (v *Validator) consistent(prev, corrected int) bool {
	if corrected > prev {
		return true
	}
	return prev-corrected <= v.config.NearWindow
}

// closerToNext prefers the candidate nearest the expected next value
func closerToNext(prev, candidate, incumbent int) bool {
	expected := prev + 1
	return abs(candidate-expected) < abs(incumbent-expected)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
