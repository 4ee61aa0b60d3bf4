// Package detect finds table regions in a sheet grid: explicit tables read
// from the workbook's own metadata and implicit tables inferred from layout.
package detect

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// Explicit converts the sheet's declared table objects into tables with
// provenance "explicit". A pure read of declared structure, no inference;
// a sheet that declares none yields nil.
func Explicit(sheet *models.Sheet) ([]models.Table, error) {
	var tables []models.Table
	for i, dt := range sheet.DeclaredTables {
		r1, c1, r2, c2, err := ParseRange(dt.Range)
		if err != nil {
			return tables, fmt.Errorf("declared table %q: %w", dt.Name, err)
		}
		t := models.Table{
			SheetName:        sheet.Name,
			Name:             dt.Name,
			Provenance:       models.ProvenanceExplicit,
			Range:            RangeString(r1, c1, r2, c2),
			R1:               r1,
			C1:               c1,
			R2:               r2,
			C2:               c2,
			HeaderInFirstRow: dt.HeaderRow,
			HeaderConfidence: 1,
		}
		if t.Name == "" {
			t.Name = fmt.Sprintf("Table %d", i+1)
		}
		if dt.HeaderRow {
			t.Headers = headerRowLabels(sheet, r1, c1, c2)
		} else {
			t.Headers = SynthesizeHeaders(c2 - c1 + 1)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// headerRowLabels reads the declared header row. Blank header cells fall
// back to positional labels so every column keeps a label.
func headerRowLabels(sheet *models.Sheet, row, c1, c2 int) []string {
	labels := make([]string, 0, c2-c1+1)
	for j := c1; j <= c2; j++ {
		s := strings.TrimSpace(sheet.Cell(row, j).Value.String())
		if s == "" {
			s = fmt.Sprintf("Column%d", j-c1+1)
		}
		labels = append(labels, s)
	}
	return labels
}

// SynthesizeHeaders returns positional labels Column1..ColumnN.
func SynthesizeHeaders(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("Column%d", i+1)
	}
	return labels
}

// ParseRange decodes an Excel range string into inclusive 1-based bounds.
// A single cell reference yields a 1x1 range.
func ParseRange(ref string) (r1, c1, r2, c2 int, err error) {
	parts := strings.SplitN(ref, ":", 2)
	c1, r1, err = excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if len(parts) == 1 {
		return r1, c1, r1, c1, nil
	}
	c2, r2, err = excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	return r1, c1, r2, c2, nil
}

// RangeString renders inclusive 1-based bounds as an Excel range string.
func RangeString(r1, c1, r2, c2 int) string {
	start, _ := excelize.CoordinatesToCellName(c1, r1)
	end, _ := excelize.CoordinatesToCellName(c2, r2)
	return start + ":" + end
}
