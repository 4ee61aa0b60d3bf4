// Package docgen turns extraction results into free-text documentation via
// a large-language-model call. The call is an opaque request/response; retry
// and cache policy belong to the model client, not here.
package docgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// Generator documents a workbook's formulas sheet by sheet.
type Generator struct {
	model llms.Model
}

// New wraps any langchaingo model.
func New(model llms.Model) *Generator {
	return &Generator{model: model}
}

// PatternGroup summarizes one unique formula pattern within a sheet.
// Formulas sharing a readable form are collapsed so the model documents
// each pattern once instead of every repeated instance.
type PatternGroup struct {
	// Pattern is the readable formula when annotation produced one,
	// otherwise the raw formula text.
	Pattern string `json:"pattern"`
	// Example is the raw formula of the first instance.
	Example string `json:"formula_example"`
	// Cells lists every address the pattern appears at.
	Cells []string `json:"cells"`
	Count int      `json:"occurrence_count"`
	// References are the first instance's dependencies, rendered as
	// sheet-qualified address strings.
	References []string `json:"references,omitempty"`
	// Table names the owning table of the first instance, if any.
	Table string `json:"table,omitempty"`
}

// GroupByPattern collapses a sheet's formula records into unique patterns,
// preserving first-seen order.
func GroupByPattern(records []models.FormulaRecord) []PatternGroup {
	var groups []PatternGroup
	index := make(map[string]int)
	for _, rec := range records {
		key := rec.Readable
		if key == "" {
			key = rec.Formula
		}
		if i, ok := index[key]; ok {
			groups[i].Cells = append(groups[i].Cells, rec.Cell)
			groups[i].Count++
			continue
		}
		refs := make([]string, 0, len(rec.Refs))
		for _, r := range rec.Refs {
			refs = append(refs, r.String())
		}
		index[key] = len(groups)
		groups = append(groups, PatternGroup{
			Pattern:    key,
			Example:    rec.Formula,
			Cells:      []string{rec.Cell},
			Count:      1,
			References: refs,
			Table:      rec.Table,
		})
	}
	return groups
}

// SheetDoc documents one sheet's formulas.
func (g *Generator) SheetDoc(ctx context.Context, sheet models.SheetResult) (string, error) {
	groups := GroupByPattern(sheet.Formulas)
	prompt, err := buildPrompt(sheet.Name, groups)
	if err != nil {
		return "", err
	}
	return llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
}

// Document produces the full plain-text report for a workbook: a header,
// a table of contents, and one documented section per sheet that carries
// formulas. Sheets without formulas are skipped.
func (g *Generator) Document(ctx context.Context, res *models.ExtractionResult) (string, error) {
	divider := strings.Repeat("=", 80)

	var documented []models.SheetResult
	for _, sheet := range res.Sheets {
		if len(sheet.Formulas) > 0 {
			documented = append(documented, sheet)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nEXCEL FORMULA DOCUMENTATION\n%s\n\n", divider, divider)
	fmt.Fprintf(&b, "Workbook: %s\nTotal sheets: %d\nTotal formulas: %d\n\n", res.BookName, len(documented), res.FormulaCount())
	b.WriteString("TABLE OF CONTENTS\n")
	for i, sheet := range documented {
		fmt.Fprintf(&b, "%d. %s\n", i+1, sheet.Name)
	}
	b.WriteString("\n")

	for _, sheet := range documented {
		doc, err := g.SheetDoc(ctx, sheet)
		if err != nil {
			return "", fmt.Errorf("docgen: sheet %q: %w", sheet.Name, err)
		}
		fmt.Fprintf(&b, "%s\nSHEET: %s\n%s\n\n%s\n\n", divider, sheet.Name, divider, doc)
	}
	return b.String(), nil
}
