package models

// Provenance distinguishes workbook-declared tables from layout-inferred ones.
type Provenance string

const (
	ProvenanceExplicit Provenance = "explicit"
	ProvenanceImplicit Provenance = "implicit"
)

// Table is one detected table region within a sheet.
type Table struct {
	// SheetName is the owning sheet.
	SheetName string `json:"sheet"`
	// Name is the declared table name, or a sequential "Table N" label.
	Name string `json:"name"`
	// Provenance records how the table was found.
	Provenance Provenance `json:"provenance"`
	// Range is the Excel-style range string (e.g. "A1:C5").
	Range string `json:"range"`
	// R1, C1, R2, C2 are the inclusive 1-based bounds.
	R1 int `json:"r1"`
	C1 int `json:"c1"`
	R2 int `json:"r2"`
	C2 int `json:"c2"`
	// Headers holds one unique label per column. Labels are synthesized
	// positionally (Column1, Column2, ...) when the table has no header row.
	Headers []string `json:"headers"`
	// HeaderInFirstRow reports whether the first row was classified as a
	// header rather than data.
	HeaderInFirstRow bool `json:"header_row"`
	// HeaderConfidence indicates how certain the header classification is,
	// in (0, 1]. Declared headers carry 1.
	HeaderConfidence float64 `json:"header_confidence,omitempty"`
	// Rows holds the data rows in sheet order, each mapping header label to
	// cell value. Fully empty rows are omitted.
	Rows []map[string]CellValue `json:"rows,omitempty"`
}

// RowCount returns the number of extracted data rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// ColCount returns the table width in columns.
func (t *Table) ColCount() int { return t.C2 - t.C1 + 1 }

// Contains reports whether the 1-based position lies within the table bounds.
func (t *Table) Contains(row, col int) bool {
	return row >= t.R1 && row <= t.R2 && col >= t.C1 && col <= t.C2
}

// Overlaps reports whether two tables' bounding rectangles intersect.
func (t *Table) Overlaps(o *Table) bool {
	return t.R1 <= o.R2 && o.R1 <= t.R2 && t.C1 <= o.C2 && o.C1 <= t.C2
}
