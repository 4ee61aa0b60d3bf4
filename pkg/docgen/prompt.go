package docgen

import (
	"encoding/json"
	"fmt"
	"strings"
)

const promptInstructions = `You are an Excel formula documentation expert. Analyze the unique formula
patterns below, extracted from the sheet %q.

Instructions:
1. Use the "pattern" field to understand what each formula does; it rewrites
   cell references as [Header] column names where the columns are known.
2. Describe dependencies with those column names, not raw cell addresses.
3. Output plain text only: capitalized headings, numbered lists, no markdown.
4. Group formulas by mathematical pattern (subtraction, sums, lookups,
   nested formulas) rather than documenting each instance.

Produce exactly four parts:
PART 1: FULL OVERVIEW - sheet purpose, structure, key calculations, data flow.
PART 2: FORMULA DOCUMENTATION - one entry per pattern: the readable form,
occurrence count, affected cells, purpose, dependencies, business context.
PART 3: DEPENDENCY ANALYSIS - which formulas feed which, table usage,
source data to final results, circular or suspicious references.
PART 4: INSIGHTS - dominant patterns, best practices observed, potential
issues, key findings, recommendations.

UNIQUE FORMULAS DATA:
%s
`

// buildPrompt renders the per-sheet documentation prompt with the unique
// pattern summary embedded as JSON.
func buildPrompt(sheetName string, groups []PatternGroup) (string, error) {
	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return "", fmt.Errorf("docgen: encode patterns: %w", err)
	}
	return strings.TrimSpace(fmt.Sprintf(promptInstructions, sheetName, data)), nil
}
