package assemble

import (
	"regexp"
	"strings"

	"github.com/tsawler/ordina/model"
)

// visualClasses are layout classes whose content is best represented by a
// generated description rather than recognized text.
var visualClasses = map[string]model.Category{
	"figure":    model.CategoryFigure,
	"flowchart": model.CategoryFigure,
	"table":     model.CategoryTable,
}

// formulaClasses render as recognized text but group under formulas
var formulaClasses = map[string]struct{}{
	"equation": {},
	"formula":  {},
}

// choiceLeaderPattern matches the markers that open an answer choice:
// circled numerals, "(n)", or "n." leaders.
var choiceLeaderPattern = regexp.MustCompile(`^\s*([①②③④⑤⑥⑦⑧⑨⑩⑪⑫⑬⑭⑮]|\([0-9]{1,2}\)|[0-9]{1,2}\.)`)

// passageCues mark text that refers the reader to accompanying material
var passageCues = []string{
	"다음을 참고",
	"다음 글",
	"다음 그림",
	"다음 표",
	"위 그림",
	"위 표",
	"아래 그림",
	"아래 표",
	"보기를 참고",
	"참조하여",
	"refer to the following",
	"refer to the above",
	"see the figure",
	"see the table",
}

// explanationCues mark explanation, solution, or answer notes
var explanationCues = []string{
	"해설",
	"풀이",
	"정답:",
	"답:",
	"explanation",
	"solution",
	"answer:",
}

// Classify determines the semantic category of an assigned region and the
// content string that represents it.
//
// Visual classes prefer the generated description, falling back to
// recognized text only when no description exists. Textual classes use
// recognized text exclusively; a description, if present, is ignored.
// Textual content is further sub-classified by lexical cues: choice leaders,
// then passage references, then explanation markers, defaulting to prompt
// text.
func Classify(region model.Region) (model.Category, string) {
	class := strings.ToLower(strings.TrimSpace(region.Class))

	if category, ok := visualClasses[class]; ok {
		content := region.Description
		if content == "" {
			content = region.Text
		}
		return category, content
	}

	text := region.Text

	if _, ok := formulaClasses[class]; ok {
		return model.CategoryFormula, text
	}

	switch {
	case choiceLeaderPattern.MatchString(text):
		return model.CategoryChoice, text
	case containsAny(text, passageCues):
		return model.CategoryPassage, text
	case containsAny(text, explanationCues):
		return model.CategoryExplanation, text
	default:
		return model.CategoryQuestionText, text
	}
}

func containsAny(text string, cues []string) bool {
	lowered := strings.ToLower(text)
	for _, cue := range cues {
		if strings.Contains(lowered, cue) {
			return true
		}
	}
	return false
}
