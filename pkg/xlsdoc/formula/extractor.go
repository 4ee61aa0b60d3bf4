package formula

import (
	"github.com/xuri/excelize/v2"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// Extract produces exactly one FormulaRecord per formula-bearing cell in the
// sheet, in row-major order. Formula text is preserved byte-for-byte. A
// formula whose references cannot be parsed yields a reference-free record
// plus a formula_parse warning; it never aborts the sheet.
func Extract(sheet *models.Sheet) ([]models.FormulaRecord, []models.Warning) {
	var records []models.FormulaRecord
	var warns []models.Warning
	for r := 1; r <= sheet.MaxRow; r++ {
		for c := 1; c <= sheet.MaxCol; c++ {
			cell := sheet.Cell(r, c)
			if cell.Formula == "" {
				continue
			}
			addr, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				continue
			}
			rec := models.FormulaRecord{
				SheetName: sheet.Name,
				Cell:      addr,
				Row:       r,
				Col:       c,
				Formula:   cell.Formula,
			}
			refs, err := ParseRefs(cell.Formula)
			if err != nil {
				warns = append(warns, models.Warning{
					Kind:    models.WarnFormulaParse,
					Sheet:   sheet.Name,
					Cell:    addr,
					Message: err.Error(),
				})
			} else {
				rec.Refs = refs
			}
			records = append(records, rec)
		}
	}
	return records, warns
}
