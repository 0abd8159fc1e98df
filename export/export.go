package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tsawler/ordina/model"
)

// Format defines the available export formats
type Format int

const (
	// FormatJSON exports the whole document as one JSON object
	FormatJSON Format = iota
	// FormatJSONL exports one JSON object per question
	FormatJSONL
	// FormatCSV exports a per-question summary as comma-separated values
	FormatCSV
	// FormatTSV exports a per-question summary as tab-separated values
	FormatTSV
	// FormatHTML exports a reviewable HTML rendition
	FormatHTML
)

// String returns a human-readable representation of the export format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatJSONL:
		return ".jsonl"
	case FormatCSV:
		return ".csv"
	case FormatTSV:
		return ".tsv"
	case FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

// ParseFormat converts a format name ("json", "jsonl", "csv", "tsv", "html")
// into a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "jsonl":
		return FormatJSONL, nil
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	case "html":
		return FormatHTML, nil
	default:
		return 0, fmt.Errorf("unknown export format: %q", name)
	}
}

// Config holds configuration options for export
type Config struct {
	// Format specifies the export format
	Format Format

	// IncludeContent includes member text/description content
	IncludeContent bool

	// IncludeUnassigned includes regions no question claimed
	IncludeUnassigned bool

	// IncludeCorrections includes the sequence-correction audit trail
	IncludeCorrections bool

	// PrettyPrint enables indentation for the JSON format
	PrettyPrint bool

	// CSVDelimiter specifies the delimiter for CSV export (default: comma)
	CSVDelimiter rune

	// IncludeHeader includes the header row in CSV/TSV exports
	IncludeHeader bool
}

// DefaultConfig returns sensible defaults for export configuration
func DefaultConfig() Config {
	return Config{
		Format:             FormatJSON,
		IncludeContent:     true,
		IncludeUnassigned:  true,
		IncludeCorrections: true,
		PrettyPrint:        false,
		CSVDelimiter:       ',',
		IncludeHeader:      true,
	}
}

// CSVConfig returns config optimized for CSV export
func CSVConfig() Config {
	config := DefaultConfig()
	config.Format = FormatCSV
	return config
}

// TSVConfig returns config optimized for TSV export
func TSVConfig() Config {
	config := DefaultConfig()
	config.Format = FormatTSV
	config.CSVDelimiter = '\t'
	return config
}

// Exporter handles exporting structured documents to various formats
type Exporter struct {
	config Config
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{config: DefaultConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config Config) *Exporter {
	return &Exporter{config: config}
}

// Box is a serialized bounding box
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Member is a serialized categorized region
type Member struct {
	RegionID string  `json:"region_id"`
	Class    string  `json:"class"`
	Box      Box     `json:"box"`
	Content  string  `json:"content,omitempty"`
	Score    float64 `json:"detector_confidence"`
}

// CategoryGroup keeps category members ordered; a JSON map would lose the
// declaration order the model guarantees.
type CategoryGroup struct {
	Category string   `json:"category"`
	Members  []Member `json:"members"`
}

// Question is a serialized question group
type Question struct {
	Number         string          `json:"number"`
	OriginalNumber string          `json:"original_number,omitempty"`
	Column         int             `json:"column"`
	TypeLabel      string          `json:"type_label,omitempty"`
	RegionCount    int             `json:"region_count"`
	MinY           float64         `json:"min_y"`
	MaxY           float64         `json:"max_y"`
	Categories     []CategoryGroup `json:"categories,omitempty"`
	SubQuestions   []string        `json:"sub_questions,omitempty"`
}

// Column is a serialized column range
type Column struct {
	Index  int     `json:"index"`
	StartX float64 `json:"start_x"`
	EndX   float64 `json:"end_x"`
}

// Corrections is the serialized sequence-correction audit trail
type Corrections struct {
	OCRCorrections map[string]string `json:"ocr_corrections,omitempty"`
	Recovered      []int             `json:"recovered_questions,omitempty"`
	Logs           []string          `json:"logs,omitempty"`
}

// Document is the serialized structured document
type Document struct {
	TotalQuestions int          `json:"total_questions"`
	LayoutType     string       `json:"layout_type"`
	Columns        []Column     `json:"columns"`
	Questions      []Question   `json:"questions"`
	Unassigned     []Member     `json:"unassigned,omitempty"`
	Corrections    *Corrections `json:"corrections,omitempty"`
}

// Export writes the document to w in the configured format
func (e *Exporter) Export(doc *model.StructuredDocument, w io.Writer) error {
	switch e.config.Format {
	case FormatJSON:
		return e.exportJSON(doc, w)
	case FormatJSONL:
		return e.exportJSONL(doc, w)
	case FormatCSV, FormatTSV:
		return e.exportCSV(doc, w)
	case FormatHTML:
		return e.exportHTML(doc, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportToFile writes the document to a file
func (e *Exporter) ExportToFile(doc *model.StructuredDocument, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	return e.Export(doc, f)
}

// ExportToString writes the document to a string
func (e *Exporter) ExportToString(doc *model.StructuredDocument) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Prepare converts a structured document into its serialized form
func (e *Exporter) Prepare(doc *model.StructuredDocument) Document {
	out := Document{
		TotalQuestions: doc.TotalQuestions,
		LayoutType:     doc.LayoutType,
		Columns:        make([]Column, 0, len(doc.Columns)),
		Questions:      make([]Question, 0, len(doc.Questions)),
	}

	for _, c := range doc.Columns {
		out.Columns = append(out.Columns, Column{Index: c.Index, StartX: c.StartX, EndX: c.EndX})
	}
	for _, q := range doc.Questions {
		out.Questions = append(out.Questions, e.prepareQuestion(q))
	}

	if e.config.IncludeUnassigned {
		for _, region := range doc.Unassigned {
			out.Unassigned = append(out.Unassigned, e.prepareMember(region, ""))
		}
	}
	if e.config.IncludeCorrections && !doc.Corrections.IsEmpty() {
		out.Corrections = prepareCorrections(doc.Corrections)
	}
	return out
}

func (e *Exporter) prepareQuestion(q model.QuestionGroup) Question {
	out := Question{
		Number:      q.Number,
		Column:      q.ColumnIndex,
		TypeLabel:   q.TypeLabel,
		RegionCount: q.RegionCount,
		MinY:        q.MinY,
		MaxY:        q.MaxY,
	}
	if q.OriginalNumber != q.Number {
		out.OriginalNumber = q.OriginalNumber
	}

	for _, category := range q.Categories.Categories() {
		members := q.Categories.Get(category)
		group := CategoryGroup{
			Category: category.String(),
			Members:  make([]Member, 0, len(members)),
		}
		for _, member := range members {
			group.Members = append(group.Members, e.prepareMember(member.Region, member.Content))
		}
		out.Categories = append(out.Categories, group)
	}

	for _, sub := range q.SubQuestions {
		out.SubQuestions = append(out.SubQuestions, sub.Identifier)
	}
	return out
}

func (e *Exporter) prepareMember(region model.Region, content string) Member {
	member := Member{
		RegionID: region.ID,
		Class:    region.Class,
		Box: Box{
			X:      region.BBox.X,
			Y:      region.BBox.Y,
			Width:  region.BBox.Width,
			Height: region.BBox.Height,
		},
		Score: region.DetectorConfidence,
	}
	if e.config.IncludeContent {
		member.Content = content
	}
	return member
}

func prepareCorrections(c model.CorrectionResult) *Corrections {
	out := &Corrections{
		OCRCorrections: c.OCRCorrections,
		Recovered:      c.RecoveredQuestions,
	}
	for _, log := range c.Logs {
		out.Logs = append(out.Logs, log.Kind+": "+log.Message)
	}
	return out
}

// exportJSON writes the whole document as one JSON object
func (e *Exporter) exportJSON(doc *model.StructuredDocument, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if e.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(e.Prepare(doc))
}

// exportJSONL writes one JSON object per question. Document-level fields
// travel on every line so each line is independently consumable.
func (e *Exporter) exportJSONL(doc *model.StructuredDocument, w io.Writer) error {
	type line struct {
		LayoutType string `json:"layout_type"`
		Question
	}

	encoder := json.NewEncoder(w)
	for i, q := range doc.Questions {
		if err := encoder.Encode(line{LayoutType: doc.LayoutType, Question: e.prepareQuestion(q)}); err != nil {
			return fmt.Errorf("encoding question %d: %w", i, err)
		}
	}
	return nil
}

// csvColumns is the fixed per-question summary schema
var csvColumns = []string{
	"number", "original_number", "column", "type_label",
	"region_count", "min_y", "max_y", "sub_questions",
}

// exportCSV writes a per-question summary as CSV or TSV
func (e *Exporter) exportCSV(doc *model.StructuredDocument, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = e.config.CSVDelimiter

	if e.config.IncludeHeader {
		if err := csvWriter.Write(csvColumns); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}

	for i, q := range doc.Questions {
		prepared := e.prepareQuestion(q)
		row := []string{
			prepared.Number,
			prepared.OriginalNumber,
			strconv.Itoa(prepared.Column),
			prepared.TypeLabel,
			strconv.Itoa(prepared.RegionCount),
			strconv.FormatFloat(prepared.MinY, 'f', -1, 64),
			strconv.FormatFloat(prepared.MaxY, 'f', -1, 64),
			strings.Join(prepared.SubQuestions, "+"),
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
