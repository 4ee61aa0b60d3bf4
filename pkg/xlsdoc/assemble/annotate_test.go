package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

func annotateTables() []models.Table {
	return []models.Table{{
		SheetName:        "S",
		Name:             "Ledger",
		R1:               1, C1: 1, R2: 10, C2: 3,
		Headers:          []string{"Price", "Qty", "Total"},
		HeaderInFirstRow: true,
	}}
}

func TestAnnotateRewritesColumnRefs(t *testing.T) {
	got := Annotate("A2*B2", "S", annotateTables())
	assert.Equal(t, "[Price]*[Qty]", got)
}

func TestAnnotateAnchorsStripped(t *testing.T) {
	got := Annotate("$A$2*B2", "S", annotateTables())
	assert.Equal(t, "[Price]*[Qty]", got)
}

func TestAnnotateRangeEndpointsUntouched(t *testing.T) {
	// Range endpoints stay addresses; only standalone cell refs rewrite.
	got := Annotate("SUM(A2:A10)+B2", "S", annotateTables())
	assert.Equal(t, "SUM(A2:A10)+[Qty]", got)
}

func TestAnnotateLongerRefsFirst(t *testing.T) {
	got := Annotate("A2+A10", "S", annotateTables())
	assert.Equal(t, "[Price]+[Price]", got)
}

func TestAnnotateOutsideTableUnchanged(t *testing.T) {
	assert.Equal(t, "Z99+1", Annotate("Z99+1", "S", annotateTables()))
}

func TestAnnotateOtherSheetUnchanged(t *testing.T) {
	assert.Equal(t, "A2+1", Annotate("A2+1", "Other", annotateTables()))
}

func TestAnnotateCrossSheetRefsUntouched(t *testing.T) {
	// Sheet2!A2 names a cell on another sheet; only the bare B2 resolves
	// against this sheet's tables.
	got := Annotate("Sheet2!A2+B2", "S", annotateTables())
	assert.Equal(t, "Sheet2!A2+[Qty]", got)
}

func TestAnnotateSynthesizedHeadersSkipped(t *testing.T) {
	tables := annotateTables()
	tables[0].HeaderInFirstRow = false
	assert.Equal(t, "A2+1", Annotate("A2+1", "S", tables))
}

func TestAnnotateFunctionNamesSurvive(t *testing.T) {
	// LOG10 looks like a cell address but sits in identifier position.
	got := Annotate("LOG10(B2)", "S", annotateTables())
	assert.Equal(t, "LOG10([Qty])", got)
}
