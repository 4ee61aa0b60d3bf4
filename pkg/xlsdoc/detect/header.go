package detect

import "github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"

// HeaderClassification is the outcome of the header heuristic for one
// candidate block: whether its first row is a header, and how certain the
// call is. Low confidence lets downstream documentation state "header
// uncertain" instead of hiding the ambiguity.
type HeaderClassification struct {
	Header     bool
	Confidence float64
}

// ClassifyHeader decides whether a block's first row is a header from a
// fixed two-row sample. The rules, in order:
//
//  1. No text at all in the first row: not a header, rows are all data.
//  2. Every non-empty first-row cell is text and the row below holds at
//     least one number or date: header, high confidence.
//  3. Anything else (mixed-type first row, no numeric evidence below):
//     header, low confidence. Losing a block's first data row is worse than
//     an uncertain header, so ties resolve toward header.
//
// Pure function over its arguments; second may be nil for single-row input.
func ClassifyHeader(first, second []models.CellValue) HeaderClassification {
	textCount, nonEmpty := 0, 0
	for _, v := range first {
		if v.IsEmpty() {
			continue
		}
		nonEmpty++
		if v.Kind == models.KindText {
			textCount++
		}
	}
	if textCount == 0 {
		return HeaderClassification{Header: false, Confidence: 0.9}
	}

	numericBelow := false
	for _, v := range second {
		if v.IsNumeric() {
			numericBelow = true
			break
		}
	}
	if textCount == nonEmpty && numericBelow {
		return HeaderClassification{Header: true, Confidence: 0.9}
	}
	return HeaderClassification{Header: true, Confidence: 0.5}
}
