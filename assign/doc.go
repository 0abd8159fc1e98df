// Package assign places every non-boundary region with its owning question
// boundary using weighted 2D distance.
//
// Distances are Euclidean, scaled by reading direction: a region below its
// candidate boundary (the expected flow) is favored, a region above it is
// penalized. The acceptance threshold adapts to the page: it loosens on
// sparse essay-style pages, tightens on densely numbered ones, and starts
// higher for large or visually-heavy regions. A region whose best candidate
// is still beyond the threshold stays unassigned rather than being forced
// onto a poor match.
//
// Assignment is a pure function of its inputs, so regions can be assigned
// independently and in parallel.
package assign
