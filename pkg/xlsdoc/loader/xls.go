package loader

import (
	"path/filepath"

	"github.com/extrame/xls"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// openXLS reads a legacy BIFF workbook. The reader exposes rendered cell
// values only; formula text is not recoverable from this path, so each sheet
// carries a formula_parse warning and extraction proceeds tables-only.
func openXLS(path string) (*models.Workbook, []models.Warning, error) {
	book, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}

	wb := &models.Workbook{Name: filepath.Base(path)}
	var warns []models.Warning
	for i := 0; i < book.NumSheets(); i++ {
		ws := book.GetSheet(i)
		if ws == nil {
			continue
		}
		sheet := loadBIFFSheet(ws)
		wb.Sheets = append(wb.Sheets, sheet)
		if !sheet.IsEmpty() {
			warns = append(warns, models.Warning{
				Kind:    models.WarnFormulaParse,
				Sheet:   sheet.Name,
				Message: "legacy .xls workbook: formula text unavailable, extracting values only",
			})
		}
	}
	return wb, warns, nil
}

func loadBIFFSheet(ws *xls.WorkSheet) *models.Sheet {
	rows := make([][]string, int(ws.MaxRow)+1)
	maxRow, maxCol := 0, 0
	for r := 0; r <= int(ws.MaxRow); r++ {
		row := ws.Row(r)
		if row == nil {
			continue
		}
		line := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			v := row.Col(c)
			line[c] = v
			if v != "" {
				if r+1 > maxRow {
					maxRow = r + 1
				}
				if c+1 > maxCol {
					maxCol = c + 1
				}
			}
		}
		rows[r] = line
	}

	sheet := &models.Sheet{Name: ws.Name, MaxRow: maxRow, MaxCol: maxCol}
	sheet.Cells = make([][]models.Cell, maxRow)
	for r := 0; r < maxRow; r++ {
		line := make([]models.Cell, maxCol)
		for c := 0; c < maxCol; c++ {
			cell := models.Cell{Row: r + 1, Col: c + 1}
			if r < len(rows) && c < len(rows[r]) {
				cell.Value = ParseValue(rows[r][c])
			}
			line[c] = cell
		}
		sheet.Cells[r] = line
	}
	return sheet
}
