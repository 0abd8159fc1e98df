package export

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/ordina/model"
)

// exportHTML writes a reviewable HTML rendition of the document: one
// section per question in reading order, with its type label, categorized
// content, and sub-question identifiers. The tree is built as nodes and
// rendered, so all content is escaped correctly.
func (e *Exporter) exportHTML(doc *model.StructuredDocument, w io.Writer) error {
	prepared := e.Prepare(doc)

	body := element(atom.Body)
	body.AppendChild(textElement(atom.H1, "Structured document"))
	body.AppendChild(textElement(atom.P, fmt.Sprintf(
		"%d questions, %s layout, %d columns",
		prepared.TotalQuestions, prepared.LayoutType, len(prepared.Columns),
	)))

	for _, q := range prepared.Questions {
		body.AppendChild(questionSection(q))
	}

	if len(prepared.Unassigned) > 0 {
		body.AppendChild(textElement(atom.H2, "Unassigned regions"))
		list := element(atom.Ul)
		for _, member := range prepared.Unassigned {
			list.AppendChild(textElement(atom.Li, memberLine(member)))
		}
		body.AppendChild(list)
	}

	if prepared.Corrections != nil {
		body.AppendChild(textElement(atom.H2, "Corrections"))
		list := element(atom.Ul)
		raws := make([]string, 0, len(prepared.Corrections.OCRCorrections))
		for raw := range prepared.Corrections.OCRCorrections {
			raws = append(raws, raw)
		}
		sort.Strings(raws)
		for _, raw := range raws {
			list.AppendChild(textElement(atom.Li, fmt.Sprintf(
				"%s corrected to %s", raw, prepared.Corrections.OCRCorrections[raw])))
		}
		for _, n := range prepared.Corrections.Recovered {
			list.AppendChild(textElement(atom.Li, fmt.Sprintf("question %d missing from sequence", n)))
		}
		body.AppendChild(list)
	}

	head := element(atom.Head)
	head.AppendChild(textElement(atom.Title, "Structured document"))

	root := element(atom.Html)
	root.AppendChild(head)
	root.AppendChild(body)

	document := &html.Node{Type: html.DocumentNode}
	document.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	document.AppendChild(root)

	return html.Render(w, document)
}

func questionSection(q Question) *html.Node {
	section := element(atom.Section)

	heading := "Question " + q.Number
	if q.OriginalNumber != "" {
		heading += fmt.Sprintf(" (recognized as %s)", q.OriginalNumber)
	}
	if q.TypeLabel != "" {
		heading += " - " + q.TypeLabel
	}
	section.AppendChild(textElement(atom.H2, heading))

	for _, group := range q.Categories {
		section.AppendChild(textElement(atom.H3, group.Category))
		list := element(atom.Ul)
		for _, member := range group.Members {
			list.AppendChild(textElement(atom.Li, memberLine(member)))
		}
		section.AppendChild(list)
	}

	if len(q.SubQuestions) > 0 {
		section.AppendChild(textElement(atom.H3, "sub-questions"))
		list := element(atom.Ul)
		for _, sub := range q.SubQuestions {
			list.AppendChild(textElement(atom.Li, sub))
		}
		section.AppendChild(list)
	}

	return section
}

func memberLine(member Member) string {
	if member.Content == "" {
		return fmt.Sprintf("[%s] %s", member.Class, member.RegionID)
	}
	return fmt.Sprintf("[%s] %s", member.Class, member.Content)
}

func element(a atom.Atom) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
}

func textElement(a atom.Atom, text string) *html.Node {
	node := element(a)
	node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return node
}
