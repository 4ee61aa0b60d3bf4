package assemble

import (
	"regexp"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// cellPattern matches single-cell references, with or without "$" anchors.
var cellPattern = regexp.MustCompile(`\$?[A-Za-z]{1,3}\$?\d+`)

// Annotate rewrites single-cell references that fall inside a table column
// as [Header], producing the readable form of a formula. Longer references
// are rewritten first so A12 is never clobbered by a rewrite of A1. Only
// genuine header labels are used; synthesized positional labels add nothing
// readable.
func Annotate(formulaText, sheetName string, tables []models.Table) string {
	found := make(map[string]bool)
	for _, m := range cellPattern.FindAllString(formulaText, -1) {
		found[strings.ToUpper(strings.ReplaceAll(m, "$", ""))] = true
	}
	if len(found) == 0 {
		return formulaText
	}

	refs := make([]string, 0, len(found))
	for ref := range found {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if len(refs[i]) != len(refs[j]) {
			return len(refs[i]) > len(refs[j])
		}
		return refs[i] < refs[j]
	})

	out := formulaText
	for _, ref := range refs {
		header := headerFor(sheetName, ref, tables)
		if header == "" {
			continue
		}
		out = replaceRef(out, ref, "["+header+"]")
	}
	return out
}

// headerFor resolves a cell reference to the header label of the table
// column containing it, or "" when the cell is outside every table or the
// table's headers are synthesized.
func headerFor(sheetName, ref string, tables []models.Table) string {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return ""
	}
	for i := range tables {
		t := &tables[i]
		if t.SheetName != sheetName || !t.HeaderInFirstRow || !t.Contains(row, col) {
			continue
		}
		idx := col - t.C1
		if idx < 0 || idx >= len(t.Headers) {
			return ""
		}
		h := t.Headers[idx]
		if !strings.ContainsFunc(h, isLetter) {
			return ""
		}
		return h
	}
	return ""
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// replaceRef substitutes every standalone occurrence of ref (with optional
// "$" anchors) in text. Replacement loops until stable because a match
// consumes its boundary characters.
func replaceRef(text, ref, repl string) string {
	letters := strings.TrimRight(ref, "0123456789")
	digits := ref[len(letters):]
	// ":" is excluded on both sides so the endpoints of a range reference
	// like A1:A10 keep their address form. "!" is excluded on the left so a
	// sheet-qualified address like Sheet2!A1 is never rewritten against the
	// current sheet's tables.
	re := regexp.MustCompile(
		`(^|[^A-Za-z0-9_$\[:!])\$?` + regexp.QuoteMeta(letters) + `\$?` + digits + `($|[^0-9:])`)
	for {
		next := re.ReplaceAllString(text, `${1}`+strings.ReplaceAll(repl, "$", "$$")+`${2}`)
		if next == text {
			return text
		}
		text = next
	}
}
