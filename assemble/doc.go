// Package assemble builds the final structured document from the earlier
// analysis stages.
//
// The [Assembler] applies sequence corrections to grouping keys, classifies
// each assigned region's content ([Classify]), groups regions by corrected
// question number, folds sub-question and question-type marks into their
// parents, orders the groups column-major, and derives a heuristic layout
// label for the page.
//
// Only categories actually observed for a question appear in its group; a
// page with no accepted boundaries assembles into an empty document rather
// than an error.
package assemble
