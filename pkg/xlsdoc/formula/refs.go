// Package formula extracts formula records and their cell dependencies from
// a loaded sheet grid. Formulas are never evaluated; only their text and the
// references parsed from it are recorded.
package formula

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/efp"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// refPattern matches A1-style cell and range references. Used as a fallback
// scan when tokenization yields no usable operands.
var refPattern = regexp.MustCompile(`(\$?[A-Za-z]{1,3}\$?\d+(?::\$?[A-Za-z]{1,3}\$?\d+)?)`)

// tokenPart matches one side of a reference: a cell, a bare column, or a
// bare row number.
var tokenPart = regexp.MustCompile(`^([A-Za-z]{1,3}\d*|\d+)$`)

// ParseRefs extracts every cell and range reference a formula names,
// deduplicated in first-seen order. Same-sheet references carry no sheet
// qualifier; cross-sheet references keep theirs. A non-nil error means the
// formula could not be tokenized at all; the caller records the formula
// reference-free rather than failing the sheet.
func ParseRefs(formulaText string) ([]models.Ref, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(formulaText), "=")
	if trimmed == "" {
		return nil, nil
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		if refs := fallbackScan(trimmed); len(refs) > 0 {
			return refs, nil
		}
		return nil, err
	}

	var refs []models.Ref
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if tok.TType != efp.TokenTypeOperand || tok.TSubType != efp.TokenSubTypeRange {
			continue
		}
		ref, ok := normalizeRef(tok.TValue)
		if !ok {
			continue
		}
		key := ref.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		refs = append(refs, ref)
	}
	return refs, nil
}

// tokenize wraps the efp parser. It recovers parser panics on malformed
// input into an ordinary error so one bad formula cannot abort a sheet.
func tokenize(s string) (tokens []efp.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("formula tokenizer: %v", r)
		}
	}()
	ps := efp.ExcelParser()
	return ps.Parse(s), nil
}

// normalizeRef turns a range-operand token into a Ref: "$" stripped,
// uppercased, sheet qualifier split off and unquoted. Structured table
// references and defined names are rejected (ok=false); they are not grid
// addresses.
func normalizeRef(raw string) (models.Ref, bool) {
	raw = strings.ReplaceAll(raw, "$", "")
	sheet := ""
	if i := strings.LastIndex(raw, "!"); i >= 0 {
		sheet = strings.Trim(raw[:i], "'")
		raw = raw[i+1:]
	}
	if raw == "" {
		return models.Ref{}, false
	}

	parts := strings.Split(raw, ":")
	if len(parts) > 2 {
		return models.Ref{}, false
	}
	for _, p := range parts {
		if !tokenPart.MatchString(p) {
			return models.Ref{}, false
		}
	}
	// A lone alphabetic token is a defined name, not a column reference;
	// bare columns and rows are only addresses inside a range.
	if len(parts) == 1 && !strings.ContainsAny(parts[0], "0123456789") {
		return models.Ref{}, false
	}
	return models.Ref{
		Sheet: sheet,
		Ref:   strings.ToUpper(raw),
		Range: len(parts) == 2,
	}, true
}

// fallbackScan applies the plain pattern scan, same-sheet only. It runs only
// when tokenization failed outright; on a successful parse the token walk is
// authoritative, so an address inside a string literal is never mistaken for
// a reference.
func fallbackScan(text string) []models.Ref {
	var refs []models.Ref
	seen := make(map[string]bool)
	for _, m := range refPattern.FindAllString(text, -1) {
		ref, ok := normalizeRef(m)
		if !ok {
			continue
		}
		key := ref.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		refs = append(refs, ref)
	}
	return refs
}
