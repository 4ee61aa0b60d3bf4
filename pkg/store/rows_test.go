package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

func TestHeadersJSON(t *testing.T) {
	got, err := headersJSON(&models.Table{Headers: []string{"Item", "Amount"}})
	require.NoError(t, err)
	assert.JSONEq(t, `["Item","Amount"]`, got)
}

func TestDataRows(t *testing.T) {
	tbl := &models.Table{
		Name:    "Expenses",
		Headers: []string{"Item", "Amount"},
		Rows: []map[string]models.CellValue{
			{"Item": models.TextValue("Rent"), "Amount": models.NumberValue(1200)},
			{"Item": models.TextValue("Food"), "Amount": models.CellValue{}},
		},
	}

	rows, err := dataRows(7, tbl)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(7), rows[0][0])
	assert.Equal(t, 1, rows[0][1])
	assert.JSONEq(t, `{"Item":"Rent","Amount":1200}`, rows[0][2].(string))

	assert.Equal(t, 2, rows[1][1])
	assert.JSONEq(t, `{"Item":"Food","Amount":null}`, rows[1][2].(string))
}

func TestFormulaRows(t *testing.T) {
	res := &models.ExtractionResult{
		BookName: "budget.xlsx",
		Sheets: []models.SheetResult{{
			Name: "Expenses",
			Formulas: []models.FormulaRecord{
				{
					SheetName: "Expenses",
					Cell:      "C2",
					Formula:   "A2*B2",
					Readable:  "[Price]*[Qty]",
					Refs:      []models.Ref{{Ref: "A2"}, {Sheet: "Rates", Ref: "B1:B9", Range: true}},
					Table:     "Ledger",
				},
				{
					SheetName: "Expenses",
					Cell:      "E9",
					Formula:   "1+1",
				},
			},
		}},
	}

	rows, err := formulaRows(res)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "budget.xlsx", first[0])
	assert.Equal(t, "Expenses", first[1])
	assert.Equal(t, "C2", first[2])
	assert.Equal(t, "Ledger", first[3])
	assert.Equal(t, "A2*B2", first[4])
	assert.Equal(t, "[Price]*[Qty]", first[5])
	assert.JSONEq(t, `["A2","Rates!B1:B9"]`, first[6].(string))

	// Sheet-level formula without a readable form carries NULLs.
	second := rows[1]
	assert.Nil(t, second[3])
	assert.Nil(t, second[5])
	assert.JSONEq(t, `[]`, second[6].(string))
}
