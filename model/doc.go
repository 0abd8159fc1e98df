// Package model defines the data types shared by the analysis pipeline:
// page geometry, detected regions, question boundaries, column ranges,
// sequence corrections, and the final structured document.
//
// All coordinates use the raster convention of layout detectors: the origin
// is the top-left corner of the page and Y increases downward.
//
// Everything in this package is created and consumed within a single
// page-processing call. Nothing persists state across calls or pages, and
// values are immutable once built.
package model
