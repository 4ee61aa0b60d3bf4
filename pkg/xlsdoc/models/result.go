package models

import "fmt"

// WarningKind classifies a non-fatal extraction condition.
type WarningKind string

const (
	// WarnDetection covers sheets yielding zero tables and auto-resolved
	// explicit/implicit overlaps.
	WarnDetection WarningKind = "detection"
	// WarnFormulaParse covers formulas whose references could not be parsed.
	WarnFormulaParse WarningKind = "formula_parse"
	// WarnSerialization covers values replaced by the encoding placeholder.
	WarnSerialization WarningKind = "serialization"
)

// Warning is a non-fatal condition attached to the result so callers can
// surface it. Nothing non-fatal is silently dropped.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Sheet   string      `json:"sheet,omitempty"`
	Cell    string      `json:"cell,omitempty"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	where := w.Sheet
	if w.Cell != "" {
		where = fmt.Sprintf("%s!%s", w.Sheet, w.Cell)
	}
	if where == "" {
		return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Kind, where, w.Message)
}

// SheetResult holds everything extracted from one sheet.
type SheetResult struct {
	Name     string          `json:"name"`
	Tables   []Table         `json:"tables,omitempty"`
	Formulas []FormulaRecord `json:"formulas,omitempty"`
}

// ExtractionResult is the root entity for one workbook: per-sheet tables and
// formula records plus every warning raised along the way. This is the unit
// handed to the serializer and to the persistence and documentation
// collaborators.
type ExtractionResult struct {
	BookName string        `json:"book_name"`
	Sheets   []SheetResult `json:"sheets"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// Sheet returns the result entry for the named sheet, or nil.
func (r *ExtractionResult) Sheet(name string) *SheetResult {
	for i := range r.Sheets {
		if r.Sheets[i].Name == name {
			return &r.Sheets[i]
		}
	}
	return nil
}

// TableCount returns the total number of tables across all sheets.
func (r *ExtractionResult) TableCount() int {
	n := 0
	for i := range r.Sheets {
		n += len(r.Sheets[i].Tables)
	}
	return n
}

// FormulaCount returns the total number of formula records across all sheets.
func (r *ExtractionResult) FormulaCount() int {
	n := 0
	for i := range r.Sheets {
		n += len(r.Sheets[i].Formulas)
	}
	return n
}
