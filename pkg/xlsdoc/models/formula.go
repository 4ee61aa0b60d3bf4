package models

// Ref is a cell or range address a formula names as a dependency. Sheet is
// empty for same-sheet references and carries the qualifier when the
// reference crosses sheets. Ref is normalized A1-style with "$" stripped.
type Ref struct {
	Sheet string `json:"sheet,omitempty"`
	Ref   string `json:"ref"`
	Range bool   `json:"range,omitempty"`
}

func (r Ref) String() string {
	if r.Sheet == "" {
		return r.Ref
	}
	return r.Sheet + "!" + r.Ref
}

// FormulaRecord captures one formula-bearing cell: its position, the formula
// text byte-for-byte as the workbook stores it, and the references parsed
// from it. Refs is empty when reference syntax could not be parsed.
type FormulaRecord struct {
	SheetName string `json:"sheet"`
	// Cell is the A1-style address; Row and Col are the same position as
	// 1-based coordinates.
	Cell string `json:"cell"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	// Formula is the formula text as stored.
	Formula string `json:"formula"`
	// Readable is the formula with in-table cell references rewritten as
	// [Header] labels. Empty when annotation changed nothing.
	Readable string `json:"readable_formula,omitempty"`
	Refs     []Ref  `json:"references,omitempty"`
	// Table names the owning table, empty for sheet-level formulas that fall
	// outside every detected table.
	Table string `json:"table,omitempty"`
}
