// Package assemble merges detected tables with formula records into the
// per-sheet extraction result.
package assemble

import (
	"fmt"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// Sheet produces one sheet's result entry. Explicit tables pass through
// unchanged; implicit candidates are added only when they do not overlap any
// explicit table (explicit detections always win, the loser is logged as a
// detection warning). Each formula record is attached to the first table, in
// scan order, whose bounds contain its cell; the rest stay sheet-level.
func Sheet(sheet *models.Sheet, explicit, implicit []models.Table, formulas []models.FormulaRecord) (models.SheetResult, []models.Warning) {
	var warns []models.Warning

	tables := make([]models.Table, 0, len(explicit)+len(implicit))
	tables = append(tables, explicit...)

	counter := len(explicit)
	for i := range implicit {
		cand := implicit[i]
		if winner := overlapping(&cand, explicit); winner != "" {
			warns = append(warns, models.Warning{
				Kind:    models.WarnDetection,
				Sheet:   sheet.Name,
				Message: fmt.Sprintf("implicit candidate %s overlaps explicit table %q; candidate discarded", cand.Range, winner),
			})
			continue
		}
		counter++
		cand.Name = fmt.Sprintf("Table %d", counter)
		tables = append(tables, cand)
	}

	for i := range tables {
		tables[i].Headers = uniqueHeaders(tables[i].Headers)
		populateRows(sheet, &tables[i])
	}

	warns = append(warns, attachFormulas(sheet.Name, tables, formulas)...)

	if len(tables) == 0 && !sheet.IsEmpty() {
		warns = append(warns, models.Warning{
			Kind:    models.WarnDetection,
			Sheet:   sheet.Name,
			Message: "sheet has content but no tables were detected",
		})
	}

	return models.SheetResult{Name: sheet.Name, Tables: tables, Formulas: formulas}, warns
}

func overlapping(cand *models.Table, explicit []models.Table) string {
	for i := range explicit {
		if cand.Overlaps(&explicit[i]) {
			return explicit[i].Name
		}
	}
	return ""
}

// uniqueHeaders enforces label uniqueness within one table. Blank labels get
// positional names; collisions get a positional disambiguator suffix.
func uniqueHeaders(labels []string) []string {
	seen := make(map[string]int, len(labels))
	out := make([]string, len(labels))
	for i, l := range labels {
		if l == "" {
			l = fmt.Sprintf("Column%d", i+1)
		}
		n := seen[l]
		seen[l] = n + 1
		if n > 0 {
			l = fmt.Sprintf("%s_%d", l, n+1)
		}
		out[i] = l
	}
	return out
}

// populateRows extracts the table's data rows under its final headers.
// When the first row is the header it is skipped; otherwise every row is
// data. Fully empty rows are omitted.
func populateRows(sheet *models.Sheet, t *models.Table) {
	start := t.R1
	if t.HeaderInFirstRow {
		start = t.R1 + 1
	}
	for r := start; r <= t.R2; r++ {
		row := make(map[string]models.CellValue, len(t.Headers))
		empty := true
		for i, h := range t.Headers {
			v := sheet.Cell(r, t.C1+i).Value
			if !v.IsEmpty() {
				empty = false
			}
			row[h] = v
		}
		if !empty {
			t.Rows = append(t.Rows, row)
		}
	}
}

// attachFormulas associates each record with the table containing its cell.
// Table bounds should never overlap after the merge; if detector output is
// inconsistent anyway, the first claim wins and the condition is reported as
// a data-quality warning, not a failure.
func attachFormulas(sheetName string, tables []models.Table, formulas []models.FormulaRecord) []models.Warning {
	var warns []models.Warning
	for i := range formulas {
		rec := &formulas[i]
		owner := -1
		for ti := range tables {
			if !tables[ti].Contains(rec.Row, rec.Col) {
				continue
			}
			if owner < 0 {
				owner = ti
				continue
			}
			warns = append(warns, models.Warning{
				Kind:    models.WarnDetection,
				Sheet:   sheetName,
				Cell:    rec.Cell,
				Message: fmt.Sprintf("cell claimed by both %q and %q; keeping first", tables[owner].Name, tables[ti].Name),
			})
		}
		if owner >= 0 {
			rec.Table = tables[owner].Name
		}
		if readable := Annotate(rec.Formula, sheetName, tables); readable != rec.Formula {
			rec.Readable = readable
		}
	}
	return warns
}
