// Package output renders extraction results to the JSON exchange format
// consumed by the documentation and persistence collaborators, and reads
// them back. The transformation is pure; the only degradation is a value
// with no defined encoding, which is emitted as a placeholder and reported
// as a serialization warning for that cell alone.
package output

import (
	"encoding/json"
	"fmt"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// SerializationError describes a value that has no defined encoding. It is
// degraded to the placeholder for the affected cell, never a workbook
// failure.
type SerializationError struct {
	Sheet  string
	Table  string
	Row    int
	Column string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("sheet %q table %q row %d column %q: value has no defined encoding, emitted as %s",
		e.Sheet, e.Table, e.Row, e.Column, models.Placeholder)
}

// Marshal renders one workbook's full extraction result. Unencodable values
// are scanned first; each one adds a serialization warning to the emitted
// document while the value itself encodes as the placeholder.
func Marshal(res *models.ExtractionResult, pretty bool) ([]byte, error) {
	payload := *res
	if warns := Scan(res); len(warns) > 0 {
		payload.Warnings = append(append([]models.Warning{}, res.Warnings...), warns...)
	}
	if pretty {
		return json.MarshalIndent(&payload, "", "  ")
	}
	return json.Marshal(&payload)
}

// MarshalSheet renders a single sheet's result, for per-sheet output files.
func MarshalSheet(sr *models.SheetResult, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(sr, "", "  ")
	}
	return json.Marshal(sr)
}

// Unmarshal reads the exchange format back into the entity graph. For any
// result produced from valid values, Unmarshal(Marshal(r)) == r.
func Unmarshal(data []byte) (*models.ExtractionResult, error) {
	var res models.ExtractionResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Scan finds every cell value without a defined encoding and returns one
// serialization warning per occurrence. The result itself is not modified.
func Scan(res *models.ExtractionResult) []models.Warning {
	var warns []models.Warning
	for si := range res.Sheets {
		sheet := &res.Sheets[si]
		for ti := range sheet.Tables {
			t := &sheet.Tables[ti]
			for ri, row := range t.Rows {
				for col, v := range row {
					if v.Valid() {
						continue
					}
					err := &SerializationError{Sheet: sheet.Name, Table: t.Name, Row: ri + 1, Column: col}
					warns = append(warns, models.Warning{
						Kind:    models.WarnSerialization,
						Sheet:   sheet.Name,
						Message: err.Error(),
					})
				}
			}
		}
	}
	return warns
}
