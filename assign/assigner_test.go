package assign

import (
	"testing"

	"github.com/tsawler/ordina/model"
)

func makeBoundary(id string, x, y float64) model.QuestionBoundary {
	return model.QuestionBoundary{
		Identifier: id,
		Type:       model.BoundaryQuestionNumber,
		BBox:       model.NewBBox(x, y, 40, 20),
	}
}

// makeRegionAt builds a 10x10 region whose centroid lands exactly at (x, y)
func makeRegionAt(id string, x, y float64) model.Region {
	return model.Region{
		ID:    id,
		Class: "text",
		BBox:  model.NewBBox(x-5, y-5, 10, 10),
	}
}

var onePageColumns = []model.ColumnRange{{Index: 0, StartX: 0, EndX: 1000}}

func TestAssignPrefersRegionsBelow(t *testing.T) {
	a := New()

	boundaries := []model.QuestionBoundary{
		makeBoundary("1", 100, 100),
		makeBoundary("2", 100, 300),
	}

	// Centroid at (100, 200): 100 below boundary 1, 100 above boundary 2.
	// Below weight 0.7 beats above weight 1.5.
	got := a.Assign(makeRegionAt("r", 100, 200), boundaries, onePageColumns)
	if !got.Assigned() || got.Identifier != "1" {
		t.Errorf("region between boundaries should prefer the one above it, got %+v", got)
	}
}

func TestAssignThresholdBoundary(t *testing.T) {
	// Neutral weights make the threshold arithmetic exact.
	cfg := DefaultConfig()
	cfg.BelowWeight = 1.0
	a := NewWithConfig(cfg)

	boundaries := make([]model.QuestionBoundary, 6)
	for i := range boundaries {
		boundaries[i] = makeBoundary(string(rune('1'+i)), 0, float64(i)*10000)
	}
	boundaries[0] = makeBoundary("1", 0, 0)

	// Exactly at the 500 threshold: accepted.
	got := a.Assign(makeRegionAt("at", 0, 500), boundaries, onePageColumns)
	if !got.Assigned() {
		t.Error("distance equal to the threshold should be accepted")
	}

	// One unit beyond: unassigned.
	got = a.Assign(makeRegionAt("past", 0, 501), boundaries, onePageColumns)
	if got.Assigned() {
		t.Error("distance one unit beyond the threshold should be unassigned")
	}
}

func TestAssignSparseScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BelowWeight = 1.0
	a := NewWithConfig(cfg)

	// A single boundary is a sparse page: threshold 500 * 1.2 = 600.
	boundaries := []model.QuestionBoundary{makeBoundary("1", 0, 0)}

	if got := a.Assign(makeRegionAt("r", 0, 600), boundaries, onePageColumns); !got.Assigned() {
		t.Error("sparse page should loosen the threshold to 600")
	}
	if got := a.Assign(makeRegionAt("r", 0, 601), boundaries, onePageColumns); got.Assigned() {
		t.Error("601 should exceed the sparse threshold")
	}
}

func TestAssignDenseScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BelowWeight = 1.0
	a := NewWithConfig(cfg)

	// 80 boundaries is a dense page: threshold 500 * 0.8 = 400.
	boundaries := make([]model.QuestionBoundary, 80)
	for i := range boundaries {
		boundaries[i] = makeBoundary("900", 0, -float64(i+1)*100000)
	}
	boundaries[0] = makeBoundary("1", 0, 0)

	if got := a.Assign(makeRegionAt("r", 0, 400), boundaries, onePageColumns); !got.Assigned() {
		t.Error("dense page threshold should be 400")
	}
	if got := a.Assign(makeRegionAt("r", 0, 401), boundaries, onePageColumns); got.Assigned() {
		t.Error("401 should exceed the dense threshold")
	}
}

func TestAssignLargeRegionThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BelowWeight = 1.0
	a := NewWithConfig(cfg)

	boundaries := make([]model.QuestionBoundary, 10)
	for i := range boundaries {
		boundaries[i] = makeBoundary("900", 0, -float64(i+1)*100000)
	}
	boundaries[0] = makeBoundary("1", 0, 0)

	// A figure 700 units away: beyond the 500 base but within the 800
	// large-region base.
	figure := model.Region{
		ID:    "fig",
		Class: "figure",
		BBox:  model.NewBBox(-5, 695, 10, 10),
	}
	if got := a.Assign(figure, boundaries, onePageColumns); !got.Assigned() {
		t.Error("visually-heavy class should get the large-region threshold")
	}

	// Same distance, plain text: unassigned.
	text := makeRegionAt("txt", 0, 700)
	if got := a.Assign(text, boundaries, onePageColumns); got.Assigned() {
		t.Error("plain text at 700 should exceed the base threshold")
	}

	// Area alone also qualifies: 1000x700 = 700000 >= 600000.
	big := model.Region{
		ID:    "big",
		Class: "text",
		BBox:  model.NewBBox(-500, 350, 1000, 700),
	}
	if got := a.Assign(big, boundaries, onePageColumns); !got.Assigned() {
		t.Error("large-area region should get the large-region threshold")
	}
}

func TestAssignTieBreaksToSmallestIdentifier(t *testing.T) {
	a := New()

	// Two boundaries equidistant from the region, listed out of order.
	boundaries := []model.QuestionBoundary{
		makeBoundary("12", 200, 100),
		makeBoundary("3", 0, 100),
	}

	got := a.Assign(makeRegionAt("r", 100, 100), boundaries, onePageColumns)
	if got.Identifier != "3" {
		t.Errorf("tie should break to the numerically smallest identifier, got %q", got.Identifier)
	}
}

func TestAssignColumnTag(t *testing.T) {
	a := New()

	columns := []model.ColumnRange{
		{Index: 0, StartX: 0, EndX: 350},
		{Index: 1, StartX: 350, EndX: 1000},
	}
	boundaries := []model.QuestionBoundary{
		makeBoundary("1", 100, 100),
		makeBoundary("4", 600, 100),
	}

	// Column membership never restricts candidates; it only tags the
	// result with the owning boundary's column.
	got := a.Assign(makeRegionAt("r", 600, 150), boundaries, columns)
	if got.Identifier != "4" || got.ColumnIndex != 1 {
		t.Errorf("expected owner 4 in column 1, got %+v", got)
	}
}

func TestAssignNoBoundaries(t *testing.T) {
	a := New()

	got := a.Assign(makeRegionAt("r", 100, 100), nil, onePageColumns)
	if got.Assigned() {
		t.Error("no boundaries means unassigned")
	}
}

func TestAssignAllPreservesOrder(t *testing.T) {
	a := New()

	boundaries := []model.QuestionBoundary{makeBoundary("1", 100, 100)}
	regions := []model.Region{
		makeRegionAt("a", 100, 150),
		makeRegionAt("b", 100, 200),
	}

	assignments := a.AssignAll(regions, boundaries, onePageColumns)
	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(assignments))
	}
	if assignments[0].Region.ID != "a" || assignments[1].Region.ID != "b" {
		t.Error("assignments should line up with input order")
	}
}
