package ordina

import (
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/tsawler/ordina/model"
)

func makeRegion(id, class string, x, y, w, h float64, text string) model.Region {
	return model.Region{
		ID:                 id,
		Class:              class,
		BBox:               model.NewBBox(x, y, w, h),
		DetectorConfidence: 0.95,
		Text:               text,
		TextConfidence:     0.95,
	}
}

// twoColumnPage builds a 1000x1400 page with three questions per column.
// Question numbers read 1,2,3 down the left column and 4,5,6 down the
// right, each followed by a body region.
func twoColumnPage() model.Page {
	var regions []model.Region
	for i := 0; i < 3; i++ {
		y := 100 + float64(i)*400
		n := i + 1
		regions = append(regions,
			makeRegion(fmt.Sprintf("qn-%d", n), "question_number", 60, y, 40, 30, fmt.Sprintf("%d번", n)),
			makeRegion(fmt.Sprintf("body-%d", n), "text", 60, y+50, 380, 200, "본문"),
		)
	}
	for i := 0; i < 3; i++ {
		y := 100 + float64(i)*400
		n := i + 4
		regions = append(regions,
			makeRegion(fmt.Sprintf("qn-%d", n), "question_number", 560, y, 40, 30, fmt.Sprintf("%d번", n)),
			makeRegion(fmt.Sprintf("body-%d", n), "text", 560, y+50, 380, 200, "본문"),
		)
	}
	return model.Page{Number: 1, Width: 1000, Height: 1400, Regions: regions}
}

func TestAnalyzeTwoColumnOrdering(t *testing.T) {
	doc := Analyze(twoColumnPage())

	if doc.TotalQuestions != 6 {
		t.Fatalf("TotalQuestions = %d, want 6", doc.TotalQuestions)
	}
	if doc.ColumnCount() != 2 {
		t.Fatalf("ColumnCount = %d, want 2", doc.ColumnCount())
	}
	if doc.LayoutType != model.LayoutMultiColumn {
		t.Errorf("LayoutType = %q, want %q", doc.LayoutType, model.LayoutMultiColumn)
	}

	var numbers []string
	for _, q := range doc.Questions {
		numbers = append(numbers, q.Number)
	}
	want := []string{"1", "2", "3", "4", "5", "6"}
	if !reflect.DeepEqual(numbers, want) {
		t.Fatalf("question order = %v, want %v", numbers, want)
	}

	// No region may leak across the column gap to a closer-by-euclid
	// boundary in the other column.
	for _, q := range doc.Questions {
		wantColumn := 0
		if n, _ := strconv.Atoi(q.Number); n >= 4 {
			wantColumn = 1
		}
		if q.ColumnIndex != wantColumn {
			t.Errorf("question %s: column = %d, want %d", q.Number, q.ColumnIndex, wantColumn)
		}
		if q.RegionCount != 1 {
			t.Errorf("question %s: RegionCount = %d, want 1", q.Number, q.RegionCount)
		}
		members := q.Categories.Get(model.CategoryQuestionText)
		if len(members) != 1 {
			t.Fatalf("question %s: question_text members = %d, want 1", q.Number, len(members))
		}
		wantID := "body-" + q.Number
		if members[0].Region.ID != wantID {
			t.Errorf("question %s: member region = %s, want %s", q.Number, members[0].Region.ID, wantID)
		}
	}

	if len(doc.Unassigned) != 0 {
		t.Errorf("unassigned regions = %d, want 0", len(doc.Unassigned))
	}
	if !doc.Corrections.IsEmpty() {
		t.Errorf("corrections = %+v, want none", doc.Corrections)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	page := twoColumnPage()

	first := NewWithConfig(DefaultConfig()).Analyze(page)
	for i := 0; i < 5; i++ {
		again := New().Analyze(page)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs from first run", i+1)
		}
	}
}

func TestAnalyzeEmptyPage(t *testing.T) {
	doc := Analyze(model.Page{Number: 1, Width: 800, Height: 1200})

	if doc.TotalQuestions != 0 {
		t.Errorf("TotalQuestions = %d, want 0", doc.TotalQuestions)
	}
	if doc.LayoutType != model.LayoutEmpty {
		t.Errorf("LayoutType = %q, want %q", doc.LayoutType, model.LayoutEmpty)
	}
	if len(doc.Unassigned) != 0 {
		t.Errorf("unassigned = %d, want 0", len(doc.Unassigned))
	}
}

func TestAnalyzeNoBoundaries(t *testing.T) {
	page := model.Page{
		Number: 1,
		Width:  800,
		Height: 1200,
		Regions: []model.Region{
			makeRegion("t1", "text", 50, 100, 300, 200, "서문"),
			makeRegion("t2", "text", 50, 400, 300, 200, "안내"),
		},
	}
	doc := Analyze(page)

	if doc.TotalQuestions != 0 {
		t.Errorf("TotalQuestions = %d, want 0", doc.TotalQuestions)
	}
	if doc.LayoutType != model.LayoutEmpty {
		t.Errorf("LayoutType = %q, want %q", doc.LayoutType, model.LayoutEmpty)
	}
	if len(doc.Unassigned) != 2 {
		t.Errorf("unassigned = %d, want 2", len(doc.Unassigned))
	}
}

func TestAnalyzeOCRCorrection(t *testing.T) {
	// Second question number misread 296 -> 206; the validator repairs it
	// and the group keeps the original for audit.
	page := model.Page{
		Number: 1,
		Width:  800,
		Height: 1200,
		Regions: []model.Region{
			makeRegion("qn-a", "question_number", 60, 100, 50, 30, "295번"),
			makeRegion("qn-b", "question_number", 60, 600, 50, 30, "206번"),
		},
	}
	doc := Analyze(page)

	if doc.TotalQuestions != 2 {
		t.Fatalf("TotalQuestions = %d, want 2", doc.TotalQuestions)
	}
	got := doc.Questions[1]
	if got.Number != "296" {
		t.Errorf("Number = %q, want %q", got.Number, "296")
	}
	if got.OriginalNumber != "206" {
		t.Errorf("OriginalNumber = %q, want %q", got.OriginalNumber, "206")
	}
	if want := map[string]string{"206": "296"}; !reflect.DeepEqual(doc.Corrections.OCRCorrections, want) {
		t.Errorf("OCRCorrections = %v, want %v", doc.Corrections.OCRCorrections, want)
	}
}

func TestAnalyzeSubQuestionsAndTypes(t *testing.T) {
	page := model.Page{
		Number: 1,
		Width:  800,
		Height: 1200,
		Regions: []model.Region{
			makeRegion("qn-1", "question_number", 60, 100, 40, 30, "1번"),
			makeRegion("ty-1", "question_type", 120, 100, 90, 30, "서술형"),
			makeRegion("sq-1a", "sub_question_number", 90, 180, 40, 25, "1)"),
			makeRegion("sq-1b", "sub_question_number", 90, 320, 40, 25, "2)"),
			makeRegion("body-1", "text", 60, 150, 300, 260, "본문"),
		},
	}
	doc := Analyze(page)

	if doc.TotalQuestions != 1 {
		t.Fatalf("TotalQuestions = %d, want 1", doc.TotalQuestions)
	}
	q := doc.Questions[0]
	if q.TypeLabel != "서술형" {
		t.Errorf("TypeLabel = %q, want %q", q.TypeLabel, "서술형")
	}
	if len(q.SubQuestions) != 2 {
		t.Fatalf("SubQuestions = %d, want 2", len(q.SubQuestions))
	}
	if q.SubQuestions[0].Identifier != "1" || q.SubQuestions[1].Identifier != "2" {
		t.Errorf("sub identifiers = %q, %q, want 1, 2",
			q.SubQuestions[0].Identifier, q.SubQuestions[1].Identifier)
	}
}

func TestAnalyzeInvalidBoxUnassigned(t *testing.T) {
	page := model.Page{
		Number: 1,
		Width:  800,
		Height: 1200,
		Regions: []model.Region{
			makeRegion("qn-1", "question_number", 60, 100, 40, 30, "1번"),
			makeRegion("bad", "text", 60, 200, 0, 0, "degenerate"),
		},
	}
	doc := Analyze(page)

	if len(doc.Unassigned) != 1 || doc.Unassigned[0].ID != "bad" {
		t.Fatalf("unassigned = %+v, want only region bad", doc.Unassigned)
	}
}

func TestAnalyzeSerialMatchesParallel(t *testing.T) {
	page := twoColumnPage()

	serial := DefaultConfig()
	serial.Workers = 1
	parallel := DefaultConfig()
	parallel.Workers = 8

	a := NewWithConfig(serial).Analyze(page)
	b := NewWithConfig(parallel).Analyze(page)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("serial and parallel runs differ")
	}
}

func TestFluentConfigurationDoesNotMutateBase(t *testing.T) {
	base := New()
	tuned := base.AllowBareNumbers().MinConfidence(0.9).Workers(2)

	if base.config.Recognizer.AllowBareNumbers {
		t.Error("chaining must not mutate the base pipeline")
	}
	if !tuned.config.Recognizer.AllowBareNumbers {
		t.Error("AllowBareNumbers not applied")
	}
	if tuned.config.Recognizer.AcceptThreshold != 0.9 {
		t.Errorf("AcceptThreshold = %v, want 0.9", tuned.config.Recognizer.AcceptThreshold)
	}
	if tuned.config.Workers != 2 {
		t.Errorf("Workers = %d, want 2", tuned.config.Workers)
	}
}

func TestMinConfidenceRejectsWeakBoundaries(t *testing.T) {
	page := model.Page{
		Number: 1,
		Width:  800,
		Height: 1200,
		Regions: []model.Region{
			makeRegion("qn-1", "question_number", 60, 100, 40, 30, "1번"),
		},
	}

	// 0.5*0.95 + 0.3*0.95 + 0.2*1.0 = 0.96
	if doc := New().Analyze(page); doc.TotalQuestions != 1 {
		t.Fatalf("default threshold should accept, got %d questions", doc.TotalQuestions)
	}
	if doc := New().MinConfidence(0.97).Analyze(page); doc.TotalQuestions != 0 {
		t.Errorf("raised threshold should reject, got %d questions", doc.TotalQuestions)
	}
}
