package detect

import (
	"time"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// sheetFromGrid builds a sheet from literal rows. Supported literals:
// string, int, float64, bool, time.Time, and nil for an empty cell.
func sheetFromGrid(name string, rows [][]any) *models.Sheet {
	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	sheet := &models.Sheet{Name: name, MaxRow: len(rows), MaxCol: maxCol}
	sheet.Cells = make([][]models.Cell, len(rows))
	for r, row := range rows {
		line := make([]models.Cell, maxCol)
		for c := 0; c < maxCol; c++ {
			cell := models.Cell{Row: r + 1, Col: c + 1}
			if c < len(row) {
				cell.Value = literal(row[c])
			}
			line[c] = cell
		}
		sheet.Cells[r] = line
	}
	return sheet
}

func literal(v any) models.CellValue {
	switch t := v.(type) {
	case nil:
		return models.CellValue{}
	case string:
		return models.TextValue(t)
	case int:
		return models.NumberValue(float64(t))
	case float64:
		return models.NumberValue(t)
	case bool:
		return models.BoolValue(t)
	case time.Time:
		return models.DateValue(t)
	}
	panic("unsupported literal")
}
