package model

// Category represents the semantic role of a region within a question group
type Category int

const (
	// CategoryQuestionText is the prompt text of the question
	CategoryQuestionText Category = iota
	// CategoryPassage is supporting passage/reference material
	CategoryPassage
	// CategoryChoice is an answer choice
	CategoryChoice
	// CategoryFigure is a figure, diagram, or flowchart
	CategoryFigure
	// CategoryTable is a table
	CategoryTable
	// CategoryFormula is a mathematical formula or equation
	CategoryFormula
	// CategoryExplanation is an explanation, solution, or answer note
	CategoryExplanation
)

// String returns a stable name for the category, suitable for output keys
func (c Category) String() string {
	switch c {
	case CategoryQuestionText:
		return "question_text"
	case CategoryPassage:
		return "passage"
	case CategoryChoice:
		return "choices"
	case CategoryFigure:
		return "figures"
	case CategoryTable:
		return "tables"
	case CategoryFormula:
		return "formulas"
	case CategoryExplanation:
		return "explanations"
	default:
		return "unknown"
	}
}

// Member is a region placed in a question group together with the content
// string chosen for it during classification (recognized text for textual
// regions, generated description for visual ones).
type Member struct {
	Region  Region
	Content string
}

// CategoryMap is a small ordered map of category to member regions. Only
// categories actually observed for a group appear; iteration order is fixed
// (category declaration order) so output is deterministic.
type CategoryMap struct {
	members [CategoryExplanation + 1][]Member
}

// Add appends a member under the given category
func (m *CategoryMap) Add(c Category, member Member) {
	if c < 0 || int(c) >= len(m.members) {
		return
	}
	m.members[c] = append(m.members[c], member)
}

// Get returns the members of a category, nil if the category was never
// observed
func (m *CategoryMap) Get(c Category) []Member {
	if c < 0 || int(c) >= len(m.members) {
		return nil
	}
	return m.members[c]
}

// Categories returns the observed categories in declaration order
func (m *CategoryMap) Categories() []Category {
	var observed []Category
	for c := range m.members {
		if len(m.members[c]) > 0 {
			observed = append(observed, Category(c))
		}
	}
	return observed
}

// Len returns the total number of members across all categories
func (m *CategoryMap) Len() int {
	total := 0
	for c := range m.members {
		total += len(m.members[c])
	}
	return total
}

// SubQuestion is a sub-question attached to a question group, keyed by its
// own sub-identifier.
type SubQuestion struct {
	Identifier string
	Boundary   QuestionBoundary
}

// QuestionGroup is all content belonging to one numbered question, built
// once per page and immutable afterward.
type QuestionGroup struct {
	// Number is the final (corrected) question identifier used as the
	// grouping key
	Number string

	// OriginalNumber is the identifier as recognized, retained when a
	// correction was applied; equal to Number otherwise
	OriginalNumber string

	// ColumnIndex is the index of the column the question's boundary sits in
	ColumnIndex int

	// Boundary is the numbering mark that anchors the group
	Boundary QuestionBoundary

	// TypeLabel is the text of an attached question-type mark, empty if none
	TypeLabel string

	// Categories holds the group's member regions by semantic role
	Categories CategoryMap

	// SubQuestions are attached sub-question marks, ordered by position
	SubQuestions []SubQuestion

	// RegionCount is the number of member regions (boundary excluded)
	RegionCount int

	// MinY and MaxY bound the vertical extent of the group's content
	MinY, MaxY float64
}

// Layout type labels derived during assembly.
const (
	LayoutEmpty       = "empty"
	LayoutSimple      = "simple"
	LayoutStandard    = "standard"
	LayoutMultiColumn = "multi_column"
	LayoutDense       = "dense"
)

// StructuredDocument is the final output for one page: the ordered,
// categorized question groups plus everything that could not be placed.
type StructuredDocument struct {
	// TotalQuestions is the number of question groups
	TotalQuestions int

	// LayoutType is a heuristic label for the page layout
	LayoutType string

	// Columns are the detected column ranges
	Columns []ColumnRange

	// Questions are the groups in reading order: ascending column index,
	// then ascending boundary y within a column
	Questions []QuestionGroup

	// Unassigned holds regions whose best boundary match exceeded the
	// acceptance threshold
	Unassigned []Region

	// Corrections is the sequence-validation audit trail for the page
	Corrections CorrectionResult
}

// ColumnCount returns the number of detected columns
func (d *StructuredDocument) ColumnCount() int {
	return len(d.Columns)
}

// Question returns the group with the given (corrected) number, nil if absent
func (d *StructuredDocument) Question(number string) *QuestionGroup {
	for i := range d.Questions {
		if d.Questions[i].Number == number {
			return &d.Questions[i]
		}
	}
	return nil
}
