package store

import (
	"encoding/json"
	"fmt"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// headersJSON encodes a table's header list for the JSONB column.
func headersJSON(t *models.Table) (string, error) {
	b, err := json.Marshal(t.Headers)
	if err != nil {
		return "", fmt.Errorf("store: table %q headers: %w", t.Name, err)
	}
	return string(b), nil
}

// dataRows builds the COPY payload for one table's data rows. Row numbers
// are 1-based in extraction order.
func dataRows(metadataID int64, t *models.Table) ([][]any, error) {
	rows := make([][]any, 0, len(t.Rows))
	for i, row := range t.Rows {
		b, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("store: table %q row %d: %w", t.Name, i+1, err)
		}
		rows = append(rows, []any{metadataID, i + 1, string(b)})
	}
	return rows, nil
}

// formulaRows builds the COPY payload for every formula record in the
// result. The owning table name is NULL for sheet-level formulas.
func formulaRows(res *models.ExtractionResult) ([][]any, error) {
	var rows [][]any
	for si := range res.Sheets {
		sheet := &res.Sheets[si]
		for _, rec := range sheet.Formulas {
			deps, err := json.Marshal(refStrings(rec.Refs))
			if err != nil {
				return nil, fmt.Errorf("store: formula %s!%s: %w", rec.SheetName, rec.Cell, err)
			}
			var tableName, readable any
			if rec.Table != "" {
				tableName = rec.Table
			}
			if rec.Readable != "" {
				readable = rec.Readable
			}
			rows = append(rows, []any{
				res.BookName, rec.SheetName, rec.Cell, tableName, rec.Formula, readable, string(deps),
			})
		}
	}
	return rows, nil
}

func refStrings(refs []models.Ref) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.String())
	}
	return out
}
