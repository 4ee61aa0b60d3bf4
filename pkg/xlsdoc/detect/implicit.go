package detect

import (
	"sort"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

// box is an inclusive 1-based rectangle.
type box struct {
	r1, r2, c1, c2 int
}

func (b box) rows() int { return b.r2 - b.r1 + 1 }
func (b box) cols() int { return b.c2 - b.c1 + 1 }

func (b box) overlaps(o box) bool {
	return b.r1 <= o.r2 && o.r1 <= b.r2 && b.c1 <= o.c2 && o.c1 <= b.c2
}

func union(a, b box) box {
	if b.r1 < a.r1 {
		a.r1 = b.r1
	}
	if b.r2 > a.r2 {
		a.r2 = b.r2
	}
	if b.c1 < a.c1 {
		a.c1 = b.c1
	}
	if b.c2 > a.c2 {
		a.c2 = b.c2
	}
	return a
}

// Implicit infers table regions from layout with provenance "implicit".
// Cells inside claimed rectangles (the explicit tables) never seed or join a
// region. The scan is row-major over an immutable occupancy grid, so the
// same grid always yields the same regions regardless of call order.
func Implicit(sheet *models.Sheet, claimed []models.Table) []models.Table {
	if sheet.IsEmpty() {
		return nil
	}

	occ := occupancy(sheet, claimed)
	var boxes []box
	for _, island := range mergeOverlapping(floodFill(occ)) {
		for _, b := range splitOnBlankLines(occ, island) {
			b = shrink(occ, b)
			if b.rows() >= 2 && b.cols() >= 1 {
				boxes = append(boxes, b)
			}
		}
	}
	sort.Slice(boxes, func(i, j int) bool {
		if boxes[i].r1 != boxes[j].r1 {
			return boxes[i].r1 < boxes[j].r1
		}
		return boxes[i].c1 < boxes[j].c1
	})

	var tables []models.Table
	for _, b := range boxes {
		tables = append(tables, buildImplicit(sheet, b))
	}
	return tables
}

// occupancy marks non-empty cells, excluding those claimed by explicit
// tables so their regions cannot re-surface as implicit candidates.
func occupancy(sheet *models.Sheet, claimed []models.Table) [][]bool {
	occ := make([][]bool, sheet.MaxRow)
	for r := 1; r <= sheet.MaxRow; r++ {
		line := make([]bool, sheet.MaxCol)
		for c := 1; c <= sheet.MaxCol; c++ {
			if sheet.Cell(r, c).Value.IsEmpty() {
				continue
			}
			inClaimed := false
			for i := range claimed {
				if claimed[i].Contains(r, c) {
					inClaimed = true
					break
				}
			}
			line[c-1] = !inClaimed
		}
		occ[r-1] = line
	}
	return occ
}

// floodFill finds the bounding box of every 4-connected component of
// occupied cells, scanning row-major.
func floodFill(occ [][]bool) []box {
	rows := len(occ)
	if rows == 0 {
		return nil
	}
	cols := len(occ[0])

	visited := make([][]bool, rows)
	for i := range visited {
		visited[i] = make([]bool, cols)
	}

	type point struct{ r, c int }
	var boxes []box
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !occ[r][c] || visited[r][c] {
				continue
			}
			b := box{r1: r, r2: r, c1: c, c2: c}
			stack := []point{{r, c}}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if p.r < 0 || p.r >= rows || p.c < 0 || p.c >= cols {
					continue
				}
				if visited[p.r][p.c] || !occ[p.r][p.c] {
					continue
				}
				visited[p.r][p.c] = true
				if p.r < b.r1 {
					b.r1 = p.r
				}
				if p.r > b.r2 {
					b.r2 = p.r
				}
				if p.c < b.c1 {
					b.c1 = p.c
				}
				if p.c > b.c2 {
					b.c2 = p.c
				}
				stack = append(stack,
					point{p.r + 1, p.c}, point{p.r - 1, p.c},
					point{p.r, p.c + 1}, point{p.r, p.c - 1})
			}
			boxes = append(boxes, box{r1: b.r1 + 1, r2: b.r2 + 1, c1: b.c1 + 1, c2: b.c2 + 1})
		}
	}
	return boxes
}

// mergeOverlapping unions island bounding boxes until no two intersect.
// Separate components can still have intersecting boxes (a block sitting in
// the notch of an L-shaped block); left unmerged they would surface as
// overlapping tables. Every table pair in the output must have disjoint
// bounds, so such components become one region.
func mergeOverlapping(boxes []box) []box {
	for {
		merged := false
		for i := 0; i < len(boxes) && !merged; i++ {
			for j := i + 1; j < len(boxes); j++ {
				if !boxes[i].overlaps(boxes[j]) {
					continue
				}
				boxes[i] = union(boxes[i], boxes[j])
				boxes = append(boxes[:j], boxes[j+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			return boxes
		}
	}
}

// splitOnBlankLines recursively splits a box on fully blank interior columns
// first, then fully blank rows. A single blank cell inside an otherwise
// occupied line never splits.
func splitOnBlankLines(occ [][]bool, b box) []box {
	colSegs := occupiedSegments(b.c1, b.c2, func(c int) bool {
		for r := b.r1; r <= b.r2; r++ {
			if occ[r-1][c-1] {
				return true
			}
		}
		return false
	})
	if len(colSegs) > 1 {
		var out []box
		for _, s := range colSegs {
			out = append(out, splitOnBlankLines(occ, box{r1: b.r1, r2: b.r2, c1: s[0], c2: s[1]})...)
		}
		return out
	}

	rowSegs := occupiedSegments(b.r1, b.r2, func(r int) bool {
		for c := b.c1; c <= b.c2; c++ {
			if occ[r-1][c-1] {
				return true
			}
		}
		return false
	})
	if len(rowSegs) > 1 {
		var out []box
		for _, s := range rowSegs {
			out = append(out, splitOnBlankLines(occ, box{r1: s[0], r2: s[1], c1: b.c1, c2: b.c2})...)
		}
		return out
	}

	return []box{b}
}

// occupiedSegments returns the maximal runs of indices in [lo, hi] for which
// occupied reports true.
func occupiedSegments(lo, hi int, occupied func(int) bool) [][2]int {
	var segs [][2]int
	start := -1
	for i := lo; i <= hi; i++ {
		if occupied(i) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			segs = append(segs, [2]int{start, i - 1})
			start = -1
		}
	}
	if start >= 0 {
		segs = append(segs, [2]int{start, hi})
	}
	return segs
}

// shrink trims blank border rows and columns so the box is the tight
// bounding rectangle of its occupied cells.
func shrink(occ [][]bool, b box) box {
	rowSegs := occupiedSegments(b.r1, b.r2, func(r int) bool {
		for c := b.c1; c <= b.c2; c++ {
			if occ[r-1][c-1] {
				return true
			}
		}
		return false
	})
	if len(rowSegs) > 0 {
		b.r1, b.r2 = rowSegs[0][0], rowSegs[len(rowSegs)-1][1]
	}
	colSegs := occupiedSegments(b.c1, b.c2, func(c int) bool {
		for r := b.r1; r <= b.r2; r++ {
			if occ[r-1][c-1] {
				return true
			}
		}
		return false
	})
	if len(colSegs) > 0 {
		b.c1, b.c2 = colSegs[0][0], colSegs[len(colSegs)-1][1]
	}
	return b
}

// buildImplicit classifies the block's first row and assembles the table.
// Names are assigned later when explicit and implicit detections merge.
func buildImplicit(sheet *models.Sheet, b box) models.Table {
	first := rowValues(sheet, b.r1, b.c1, b.c2)
	var second []models.CellValue
	if b.r2 > b.r1 {
		second = rowValues(sheet, b.r1+1, b.c1, b.c2)
	}
	cls := ClassifyHeader(first, second)

	t := models.Table{
		SheetName:        sheet.Name,
		Provenance:       models.ProvenanceImplicit,
		Range:            RangeString(b.r1, b.c1, b.r2, b.c2),
		R1:               b.r1,
		C1:               b.c1,
		R2:               b.r2,
		C2:               b.c2,
		HeaderInFirstRow: cls.Header,
		HeaderConfidence: cls.Confidence,
	}
	if cls.Header {
		t.Headers = headerRowLabels(sheet, b.r1, b.c1, b.c2)
	} else {
		t.Headers = SynthesizeHeaders(b.c2 - b.c1 + 1)
	}
	return t
}

func rowValues(sheet *models.Sheet, row, c1, c2 int) []models.CellValue {
	vals := make([]models.CellValue, 0, c2-c1+1)
	for c := c1; c <= c2; c++ {
		vals = append(vals, sheet.Cell(row, c).Value)
	}
	return vals
}
