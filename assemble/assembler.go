package assemble

import (
	"sort"

	"github.com/tsawler/ordina/assign"
	"github.com/tsawler/ordina/model"
)

// Attachment is a sub-question or question-type mark attached to a parent
// question boundary.
type Attachment struct {
	// Boundary is the attached mark
	Boundary model.QuestionBoundary

	// ParentIndex is the index of the owning question boundary, -1 when
	// no parent was close enough
	ParentIndex int
}

// Config holds configuration for structure assembly
type Config struct {
	// SimpleMaxQuestions is the largest question count labeled "simple"
	// Default: 2
	SimpleMaxQuestions int

	// DenseMinQuestions is the smallest question count labeled "dense"
	// Default: 30
	DenseMinQuestions int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		SimpleMaxQuestions: 2,
		DenseMinQuestions:  30,
	}
}

// Assembler builds the final structured document: applies sequence
// corrections to grouping keys, classifies and groups assigned regions, and
// orders the groups column-major.
type Assembler struct {
	config Config
}

// New creates an assembler with default configuration
func New() *Assembler {
	return &Assembler{config: DefaultConfig()}
}

// NewWithConfig creates an assembler with custom configuration
func NewWithConfig(config Config) *Assembler {
	return &Assembler{config: config}
}

// Assemble builds the structured document for one page. boundaries are the
// accepted question-number marks; assignments index into them. Empty
// boundary input yields an empty document, never an error.
func (a *Assembler) Assemble(
	boundaries []model.QuestionBoundary,
	columns []model.ColumnRange,
	assignments []assign.Assignment,
	attachments []Attachment,
	corrections model.CorrectionResult,
) *model.StructuredDocument {
	doc := &model.StructuredDocument{
		Columns:     columns,
		Corrections: corrections,
	}

	if len(boundaries) == 0 {
		doc.LayoutType = model.LayoutEmpty
		for _, assignment := range assignments {
			doc.Unassigned = append(doc.Unassigned, assignment.Region)
		}
		return doc
	}

	groups := make([]model.QuestionGroup, len(boundaries))
	for i, b := range boundaries {
		groups[i] = model.QuestionGroup{
			Number:         corrections.Corrected(b.Identifier),
			OriginalNumber: b.Identifier,
			ColumnIndex:    model.ColumnIndexOf(columns, b.BBox.X),
			Boundary:       b,
			MinY:           b.BBox.Top(),
			MaxY:           b.BBox.Bottom(),
		}
	}

	for _, assignment := range assignments {
		if !assignment.Assigned() {
			doc.Unassigned = append(doc.Unassigned, assignment.Region)
			continue
		}

		group := &groups[assignment.BoundaryIndex]
		category, content := Classify(assignment.Region)
		group.Categories.Add(category, model.Member{
			Region:  assignment.Region,
			Content: content,
		})
		group.RegionCount++
		if top := assignment.Region.BBox.Top(); top < group.MinY {
			group.MinY = top
		}
		if bottom := assignment.Region.BBox.Bottom(); bottom > group.MaxY {
			group.MaxY = bottom
		}
	}

	attachMarks(groups, attachments)

	// Reading order: ascending column index, then ascending boundary y
	// within a column.
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].ColumnIndex != groups[j].ColumnIndex {
			return groups[i].ColumnIndex < groups[j].ColumnIndex
		}
		return groups[i].Boundary.BBox.Y < groups[j].Boundary.BBox.Y
	})

	doc.Questions = groups
	doc.TotalQuestions = len(groups)
	doc.LayoutType = a.layoutType(len(groups), len(columns))
	return doc
}

// attachMarks folds sub-question and question-type marks into their parent
// groups, in vertical order. Marks with no parent are dropped: they are
// already recorded on their source regions for audit.
func attachMarks(groups []model.QuestionGroup, attachments []Attachment) {
	ordered := make([]Attachment, len(attachments))
	copy(ordered, attachments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Boundary.BBox.Y < ordered[j].Boundary.BBox.Y
	})

	for _, attachment := range ordered {
		if attachment.ParentIndex < 0 || attachment.ParentIndex >= len(groups) {
			continue
		}
		group := &groups[attachment.ParentIndex]

		switch attachment.Boundary.Type {
		case model.BoundarySubQuestionNumber:
			group.SubQuestions = append(group.SubQuestions, model.SubQuestion{
				Identifier: attachment.Boundary.Identifier,
				Boundary:   attachment.Boundary,
			})
		case model.BoundaryQuestionType:
			if group.TypeLabel == "" {
				group.TypeLabel = attachment.Boundary.RawText
			}
		}
	}
}

// layoutType derives the heuristic page label from question and column
// counts. Multi-column wins over count-based labels; density wins over
// simplicity.
func (a *Assembler) layoutType(questionCount, columnCount int) string {
	switch {
	case columnCount > 1:
		return model.LayoutMultiColumn
	case questionCount >= a.config.DenseMinQuestions:
		return model.LayoutDense
	case questionCount <= a.config.SimpleMaxQuestions:
		return model.LayoutSimple
	default:
		return model.LayoutStandard
	}
}
