package xlsdoc

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// buildFixture writes a workbook with a declared table (A1:C5), a separate
// implicit block (A8:B10), and a total formula inside the declared table.
func buildFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	set := func(cell string, v any) {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	set("A1", "Item")
	set("B1", "Amount")
	set("C1", "Paid")
	set("A2", "Rent")
	set("B2", 1200)
	set("C2", true)
	set("A3", "Food")
	set("B3", 450)
	set("C3", false)
	set("A4", "Transit")
	set("B4", 120)
	set("C4", true)
	set("A5", "Total")
	set("C5", true)
	require.NoError(t, f.SetCellFormula("Sheet1", "B5", "SUM(B2:B4)"))
	require.NoError(t, f.AddTable("Sheet1", &excelize.Table{
		Range: "A1:C5",
		Name:  "Expenses",
	}))

	set("A8", "Month")
	set("B8", "Savings")
	set("A9", "Jan")
	set("B9", 300)
	set("A10", "Feb")
	set("B10", 280)

	path := filepath.Join(t.TempDir(), "budget.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExtractWorkbook(t *testing.T) {
	path := buildFixture(t)

	res, err := Extract(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "budget.xlsx", res.BookName)
	require.Len(t, res.Sheets, 1)

	sheet := res.Sheets[0]
	require.Len(t, sheet.Tables, 2)

	declared := sheet.Tables[0]
	assert.Equal(t, models.ProvenanceExplicit, declared.Provenance)
	assert.Equal(t, "Expenses", declared.Name)
	assert.Equal(t, "A1:C5", declared.Range)
	assert.Equal(t, []string{"Item", "Amount", "Paid"}, declared.Headers)
	assert.Len(t, declared.Rows, 4)

	inferred := sheet.Tables[1]
	assert.Equal(t, models.ProvenanceImplicit, inferred.Provenance)
	assert.Equal(t, "Table 2", inferred.Name)
	assert.Equal(t, "A8:B10", inferred.Range)
	assert.Equal(t, []string{"Month", "Savings"}, inferred.Headers)
	require.Len(t, inferred.Rows, 2)
	assert.Equal(t, models.TextValue("Jan"), inferred.Rows[0]["Month"])
	assert.Equal(t, models.NumberValue(300), inferred.Rows[0]["Savings"])

	require.Len(t, sheet.Formulas, 1)
	rec := sheet.Formulas[0]
	assert.Equal(t, "B5", rec.Cell)
	assert.Equal(t, "SUM(B2:B4)", rec.Formula)
	assert.Equal(t, "Expenses", rec.Table)
	require.Len(t, rec.Refs, 1)
	assert.Equal(t, models.Ref{Ref: "B2:B4", Range: true}, rec.Refs[0])

	assert.Empty(t, res.Warnings)
}

func TestExtractDeterministicAcrossWorkers(t *testing.T) {
	path := buildFixture(t)
	ctx := context.Background()

	serial, err := Extract(ctx, path, Options{Workers: 1})
	require.NoError(t, err)
	parallel, err := Extract(ctx, path, Options{Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)
}

func TestExtractEmptyWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, f.SaveAs(path))

	res, err := Extract(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Sheets, 1)
	assert.Empty(t, res.Sheets[0].Tables)
	assert.Empty(t, res.Warnings)
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(context.Background(), filepath.Join(t.TempDir(), "gone.xlsx"), DefaultOptions())
	assert.Error(t, err)
}

func TestExtractCanceledContext(t *testing.T) {
	path := buildFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Extract(ctx, path, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
