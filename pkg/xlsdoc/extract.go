package xlsdoc

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/assemble"
	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/detect"
	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/formula"
	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/loader"
	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// Extract loads the workbook at path and produces its extraction result:
// per-sheet tables (explicit and implicit, non-overlapping), formula
// records, and every warning raised along the way. Load failures are fatal
// for this workbook only; sheet-level conditions never abort other sheets.
// Cancellation is honored between sheets.
func Extract(ctx context.Context, path string, opts Options) (*models.ExtractionResult, error) {
	wb, loadWarns, err := loader.Open(path)
	if err != nil {
		return nil, err
	}

	res := &models.ExtractionResult{
		BookName: wb.Name,
		Sheets:   make([]models.SheetResult, len(wb.Sheets)),
	}
	sheetWarns := make([][]models.Warning, len(wb.Sheets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, sheet := range wb.Sheets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res.Sheets[i], sheetWarns[i] = extractSheet(sheet)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Warnings = append(res.Warnings, loadWarns...)
	for _, w := range sheetWarns {
		res.Warnings = append(res.Warnings, w...)
	}
	return res, nil
}

// extractSheet runs the detectors and the formula extractor over one sheet
// and assembles its result. Only the immutable grid is read.
func extractSheet(sheet *models.Sheet) (models.SheetResult, []models.Warning) {
	var warns []models.Warning

	explicit, err := detect.Explicit(sheet)
	if err != nil {
		// A malformed declared range loses that table; the rest of the
		// sheet still extracts.
		warns = append(warns, models.Warning{
			Kind:    models.WarnDetection,
			Sheet:   sheet.Name,
			Message: err.Error(),
		})
	}
	implicit := detect.Implicit(sheet, explicit)

	formulas, fwarns := formula.Extract(sheet)
	warns = append(warns, fwarns...)

	result, awarns := assemble.Sheet(sheet, explicit, implicit, formulas)
	warns = append(warns, awarns...)
	return result, warns
}
