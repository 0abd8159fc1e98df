// Package boundary extracts question-numbering marks from detected page
// regions.
//
// Extraction runs in two stages. The [Extractor] filters regions to those
// whose detector label is a whitelisted numbering class, producing
// provisional candidates. The [NumberRecognizer] then cleans each
// candidate's recognized text, extracts a bare numeric identifier via tiered
// pattern matching, and combines detector confidence, recognition
// confidence, and pattern score into a single acceptance confidence:
//
//	extractor := boundary.NewExtractor()
//	boundaries := extractor.Extract(page.Regions)
//
// Pattern tiers, first match wins:
//
//   - canonical forms: "7번", "7.", "문제 7", "7)" (score 1.0)
//   - Q-prefixed forms: "Q7", "Q 7" (score 0.9)
//   - canonical forms with trailing recognition noise (score 0.8)
//   - bare 2-3 digit numerals, config-gated (score 0.6)
//
// Numerals adjacent to answer/score annotation tokens are rejected outright.
//
// There is no failure path: text that yields no acceptable identifier simply
// produces no boundary.
package boundary
