// Package ordina reconstructs the logical structure of a scanned educational
// document page from its detected layout regions: which regions belong to
// which numbered question, in what reading order, and with what semantic
// role.
//
// Basic usage:
//
//	doc := ordina.Analyze(model.Page{
//	    Width:   1000,
//	    Height:  1400,
//	    Regions: regions,
//	})
//	for _, q := range doc.Questions {
//	    fmt.Println(q.Number, q.RegionCount)
//	}
//
// With options:
//
//	cfg := ordina.DefaultConfig()
//	cfg.Recognizer.AllowBareNumbers = true
//	doc := ordina.NewWithConfig(cfg).Analyze(page)
//
// The analysis reconciles three independent, noisy signals - geometric
// layout detection, optical text recognition, and multi-column page
// geometry - into a single consistent, ordered grouping. It is a pure,
// CPU-bound transformation over an immutable snapshot of one page's
// regions: no I/O, no shared state, total over its input domain. Identical
// inputs always produce identical output, including tie-break order. Pages
// are independent, so callers may run one Analyze per page concurrently.
//
// The lower-level stage packages (boundary, layout, assign, sequence,
// assemble) are also available for advanced use.
package ordina

import (
	"runtime"
	"sort"
	"sync"

	"github.com/tsawler/ordina/assemble"
	"github.com/tsawler/ordina/assign"
	"github.com/tsawler/ordina/boundary"
	"github.com/tsawler/ordina/layout"
	"github.com/tsawler/ordina/model"
	"github.com/tsawler/ordina/sequence"
)

// Config aggregates the configuration of every analysis stage
type Config struct {
	// Recognizer configures boundary extraction and number recognition
	Recognizer boundary.RecognizerConfig

	// Columns configures column-layout inference
	Columns layout.ColumnConfig

	// Assigner configures spatial assignment
	Assigner assign.Config

	// Sequence configures numbering-sequence validation
	Sequence sequence.Config

	// Assembler configures final document assembly
	Assembler assemble.Config

	// Workers bounds the parallel fan-out of per-region assignment.
	// Zero means one worker per CPU.
	Workers int
}

// DefaultConfig returns the default configuration of every stage
func DefaultConfig() Config {
	return Config{
		Recognizer: boundary.DefaultRecognizerConfig(),
		Columns:    layout.DefaultColumnConfig(),
		Assigner:   assign.DefaultConfig(),
		Sequence:   sequence.DefaultConfig(),
		Assembler:  assemble.DefaultConfig(),
	}
}

// Pipeline runs the full page analysis. It holds no per-page state and is
// safe for concurrent use.
type Pipeline struct {
	config    Config
	extractor *boundary.Extractor
	columns   *layout.ColumnDetector
	assigner  *assign.Assigner
	validator *sequence.Validator
	assembler *assemble.Assembler
}

// New creates a pipeline with default configuration
func New() *Pipeline {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a pipeline with custom configuration
func NewWithConfig(config Config) *Pipeline {
	return &Pipeline{
		config:    config,
		extractor: boundary.NewExtractorWithConfig(config.Recognizer),
		columns:   layout.NewColumnDetectorWithConfig(config.Columns),
		assigner:  assign.NewWithConfig(config.Assigner),
		validator: sequence.NewWithConfig(config.Sequence),
		assembler: assemble.NewWithConfig(config.Assembler),
	}
}

// Analyze is a convenience wrapper running the default pipeline on one page
func Analyze(page model.Page) *model.StructuredDocument {
	return New().Analyze(page)
}

// Analyze reconstructs the structured document for one page.
//
// Stages: boundary extraction and number recognition, column-layout
// inference from the accepted boundary positions, sequence validation over
// the reading-ordered identifiers, spatial assignment of every remaining
// region, and final assembly.
func (p *Pipeline) Analyze(page model.Page) *model.StructuredDocument {
	extracted := p.extractor.Extract(page.Regions)

	var mains, marks []model.QuestionBoundary
	for _, b := range extracted {
		if b.Type == model.BoundaryQuestionNumber {
			mains = append(mains, b)
		} else {
			marks = append(marks, b)
		}
	}

	xs := make([]float64, len(mains))
	for i, b := range mains {
		xs[i] = b.BBox.X
	}
	columns := p.columns.Detect(xs, page.Width)

	// Validation walks identifiers in reading order: column-major, top to
	// bottom within a column. Sorting mains up front also fixes the index
	// space the assigner and assembler share.
	sort.SliceStable(mains, func(i, j int) bool {
		ci := model.ColumnIndexOf(columns, mains[i].BBox.X)
		cj := model.ColumnIndexOf(columns, mains[j].BBox.X)
		if ci != cj {
			return ci < cj
		}
		if mains[i].BBox.Y != mains[j].BBox.Y {
			return mains[i].BBox.Y < mains[j].BBox.Y
		}
		return mains[i].BBox.X < mains[j].BBox.X
	})

	identifiers := make([]string, len(mains))
	for i, b := range mains {
		identifiers[i] = b.Identifier
	}
	corrections := p.validator.Validate(identifiers)

	assignments := p.assignRegions(page, extracted, mains, columns)
	attachments := p.attachMarks(page, marks, mains, columns)

	return p.assembler.Assemble(mains, columns, assignments, attachments, corrections)
}

// assignRegions assigns every non-boundary region to its owning boundary.
// Assignment is a pure function of the fixed boundary list, so regions fan
// out across workers; results are written by index to keep output
// deterministic.
func (p *Pipeline) assignRegions(page model.Page, extracted, mains []model.QuestionBoundary, columns []model.ColumnRange) []assign.Assignment {
	boundarySources := make(map[string]struct{}, len(extracted))
	for _, b := range extracted {
		boundarySources[b.SourceRegionID] = struct{}{}
	}

	var toAssign []model.Region
	for _, region := range page.Regions {
		if _, isBoundary := boundarySources[region.ID]; isBoundary {
			continue
		}
		toAssign = append(toAssign, region)
	}

	assignments := make([]assign.Assignment, len(toAssign))

	workers := p.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(toAssign) {
		workers = len(toAssign)
	}

	assignOne := func(i int) {
		region := toAssign[i]
		if !region.BBox.IsValid() {
			// Malformed boxes are excluded, not failed: they surface
			// in the unassigned list for the caller to report.
			assignments[i] = assign.Assignment{Region: region, BoundaryIndex: -1}
			return
		}
		assignments[i] = p.assigner.Assign(region, mains, columns)
	}

	if workers <= 1 {
		for i := range toAssign {
			assignOne(i)
		}
		return assignments
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				assignOne(i)
			}
		}()
	}
	for i := range toAssign {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return assignments
}

// attachMarks finds the parent question for every sub-question and
// question-type mark by assigning the mark's source region spatially, the
// same way ordinary regions are assigned.
func (p *Pipeline) attachMarks(page model.Page, marks, mains []model.QuestionBoundary, columns []model.ColumnRange) []assemble.Attachment {
	if len(marks) == 0 {
		return nil
	}

	regionsByID := make(map[string]model.Region, len(page.Regions))
	for _, region := range page.Regions {
		regionsByID[region.ID] = region
	}

	attachments := make([]assemble.Attachment, 0, len(marks))
	for _, mark := range marks {
		source, ok := regionsByID[mark.SourceRegionID]
		if !ok {
			continue
		}
		assignment := p.assigner.Assign(source, mains, columns)
		attachments = append(attachments, assemble.Attachment{
			Boundary:    mark,
			ParentIndex: assignment.BoundaryIndex,
		})
	}
	return attachments
}
