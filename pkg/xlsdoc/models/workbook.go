package models

// Cell is one grid position, 1-based. Formula holds the formula text exactly
// as the workbook stores it, empty when the cell carries none.
type Cell struct {
	Row     int
	Col     int
	Value   CellValue
	Formula string
}

// DeclaredTable is a table object the workbook format itself records:
// a name, a boundary range, and whether the first row is a header row.
type DeclaredTable struct {
	Name      string
	Range     string
	HeaderRow bool
}

// Sheet is a fully materialized cell grid. Cells is dense within
// MaxRow x MaxCol; absent entries are empty cells. Read-only after load.
type Sheet struct {
	Name           string
	MaxRow         int
	MaxCol         int
	Cells          [][]Cell
	DeclaredTables []DeclaredTable
}

// Cell returns the cell at (row, col), 1-based. Positions outside the grid
// return an empty cell at that position.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 1 || row > s.MaxRow || col < 1 || col > s.MaxCol {
		return Cell{Row: row, Col: col}
	}
	return s.Cells[row-1][col-1]
}

// IsEmpty reports whether the sheet holds no cells at all.
func (s *Sheet) IsEmpty() bool { return s.MaxRow == 0 || s.MaxCol == 0 }

// Workbook is a named source file with its ordered sheets. Immutable once
// loaded; discarded after the extraction result is produced.
type Workbook struct {
	Name   string
	Sheets []*Sheet
}
