// Package sequence validates a page's question-numbering sequence and
// recovers from recognition errors.
//
// The [Validator] walks the accepted identifiers in reading order. Forward
// gaps record the skipped numbers as missing (informational only). Reverse
// steps are treated as probable digit-confusion errors: substituting a
// commonly confused digit is attempted, and when the substitution restores a
// consistent sequence, a correction is proposed.
//
// Corrections are advisory. The original identifiers are retained on their
// boundaries for audit; assembly applies corrections only to the grouping
// keys of the final output.
package sequence
