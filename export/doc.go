// Package export serializes structured documents for downstream consumers.
//
// The JSON format carries the complete document; JSONL emits one
// independently consumable object per question; CSV/TSV carry a flat
// per-question summary; HTML produces a human-reviewable rendition.
package export
