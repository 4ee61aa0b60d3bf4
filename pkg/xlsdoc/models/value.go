// Package models defines the entity graph produced by workbook extraction.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ValueKind identifies the variant held by a CellValue.
type ValueKind uint8

const (
	KindEmpty ValueKind = iota
	KindNumber
	KindText
	KindBool
	KindDate
)

// Placeholder replaces a value that has no defined JSON encoding. The
// affected cell is degraded, never the sheet or workbook.
const Placeholder = "#VALUE?"

// CellValue is a closed tagged variant over the types a workbook cell can
// hold: number, text, boolean, date, or empty. Only the field matching Kind
// is meaningful.
type CellValue struct {
	Kind   ValueKind
	Number float64
	Text   string
	Bool   bool
	Time   time.Time
}

func NumberValue(f float64) CellValue { return CellValue{Kind: KindNumber, Number: f} }
func TextValue(s string) CellValue    { return CellValue{Kind: KindText, Text: s} }
func BoolValue(b bool) CellValue      { return CellValue{Kind: KindBool, Bool: b} }
func DateValue(t time.Time) CellValue { return CellValue{Kind: KindDate, Time: t} }

func (v CellValue) IsEmpty() bool { return v.Kind == KindEmpty }

// Valid reports whether the value's kind has a defined encoding.
func (v CellValue) Valid() bool { return v.Kind <= KindDate }

// IsNumeric reports whether the value is number- or date-typed. The header
// heuristic treats both as evidence of a data row.
func (v CellValue) IsNumeric() bool { return v.Kind == KindNumber || v.Kind == KindDate }

// String renders the value for display (header labels, log fields).
func (v CellValue) String() string {
	switch v.Kind {
	case KindEmpty:
		return ""
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindText:
		return v.Text
	case KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case KindDate:
		return v.Time.Format(time.RFC3339)
	}
	return Placeholder
}

// MarshalJSON encodes empty as null, numbers, text and booleans as their
// native JSON forms, and dates as {"date": RFC3339}. An unknown kind encodes
// as the placeholder string; output.Scan reports it as a warning.
func (v CellValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindEmpty:
		return []byte("null"), nil
	case KindNumber:
		return json.Marshal(v.Number)
	case KindText:
		return json.Marshal(v.Text)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindDate:
		return json.Marshal(map[string]string{"date": v.Time.UTC().Format(time.RFC3339)})
	}
	return json.Marshal(Placeholder)
}

func (v *CellValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = CellValue{}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case bool:
		*v = BoolValue(t)
	case string:
		*v = TextValue(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return err
		}
		*v = NumberValue(f)
	case map[string]any:
		s, ok := t["date"].(string)
		if !ok {
			return fmt.Errorf("cell value: unrecognized object %s", data)
		}
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
		*v = DateValue(ts.UTC())
	default:
		return fmt.Errorf("cell value: cannot decode %s", data)
	}
	return nil
}
