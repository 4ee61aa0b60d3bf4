// Package loader opens spreadsheet files and materializes per-sheet cell
// grids. Each sheet is read fully into memory and the file handle is closed
// before the loader returns, so detection never touches the file.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// ErrUnsupportedFormat indicates a file extension the loader does not handle.
// It is reported before any parsing is attempted.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// LoadError reports a workbook that could not be read. Fatal for the
// workbook it names; other workbooks in a multi-file run are unaffected.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Open loads the workbook at path. The extension gates the parser: .xlsx and
// .xlsm go through excelize, legacy .xls through the BIFF reader, anything
// else fails fast with ErrUnsupportedFormat. Returned warnings are
// load-stage conditions (e.g. formulas unavailable in BIFF mode).
func Open(path string) (*models.Workbook, []models.Warning, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return openXLSX(path)
	case ".xls":
		return openXLS(path)
	default:
		return nil, nil, &LoadError{Path: path, Err: ErrUnsupportedFormat}
	}
}

func openXLSX(path string) (*models.Workbook, []models.Warning, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	wb := &models.Workbook{Name: filepath.Base(path)}
	for _, name := range f.GetSheetList() {
		sheet, err := loadSheet(f, name)
		if err != nil {
			return nil, nil, &LoadError{Path: path, Err: fmt.Errorf("sheet %q: %w", name, err)}
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil, nil
}

// loadSheet materializes one sheet: a typed value grid, formula text per
// cell, and the table objects the sheet declares.
func loadSheet(f *excelize.File, name string) (*models.Sheet, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}

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
				cell.Value = ParseValue(row[c])
			}
			line[c] = cell
		}
		sheet.Cells[r] = line
	}

	for r := 1; r <= sheet.MaxRow; r++ {
		for c := 1; c <= sheet.MaxCol; c++ {
			addr, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				continue
			}
			formula, err := f.GetCellFormula(name, addr)
			if err != nil || formula == "" {
				continue
			}
			sheet.Cells[r-1][c-1].Formula = formula
		}
	}

	tables, err := f.GetTables(name)
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		dt := models.DeclaredTable{Name: t.Name, Range: t.Range, HeaderRow: true}
		if t.ShowHeaderRow != nil {
			dt.HeaderRow = *t.ShowHeaderRow
		}
		sheet.DeclaredTables = append(sheet.DeclaredTables, dt)
	}
	return sheet, nil
}

// dateLayouts covers the display forms excelize renders for date-styled
// numbers under the built-in number formats.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"01/02/2006",
	"1/2/2006",
	"Jan-06",
}

// ParseValue types a rendered cell string: integer and float first, then
// boolean, then the known date layouts, else text. Empty input stays empty.
func ParseValue(s string) models.CellValue {
	if s == "" {
		return models.CellValue{}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.NumberValue(float64(i))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.NumberValue(f)
	}
	switch s {
	case "TRUE":
		return models.BoolValue(true)
	case "FALSE":
		return models.BoolValue(false)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.DateValue(t.UTC())
		}
	}
	return models.TextValue(s)
}
