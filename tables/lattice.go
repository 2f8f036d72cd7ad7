package tables

import (
	"sort"
	"strings"

	"github.com/tsawler/structura/model"
	"github.com/tsawler/structura/reader"
)

// LatticeDetector recovers tables from drawn geometry. It decomposes the
// page's rectangles into horizontal and vertical edges, groups aligned
// edges into ruled lines, and reads the cell matrix off the resulting
// lattice. It is the fallback stage for pages whose tables carry visible
// borders but no usable text alignment.
type LatticeDetector struct {
	config Config
}

// NewLatticeDetector creates a lattice detector with default configuration.
func NewLatticeDetector() *LatticeDetector {
	return &LatticeDetector{config: DefaultConfig()}
}

// NewLatticeDetectorWithConfig creates a lattice detector with the given
// configuration.
func NewLatticeDetectorWithConfig(config Config) *LatticeDetector {
	return &LatticeDetector{config: config}
}

// Name returns the detector's identifier ("lattice").
func (d *LatticeDetector) Name() string {
	return "lattice"
}

// edge is one side of a drawn rectangle, projected onto a grid axis.
// pos is the coordinate on the alignment axis (Y for horizontal edges,
// X for vertical); lo and hi bound the edge on the perpendicular axis.
type edge struct {
	pos    float64
	lo, hi float64
}

// edgeGroup is a set of edges aligned within tolerance, forming one
// candidate ruled line.
type edgeGroup struct {
	pos    float64
	lo, hi float64
	count  int
}

// Detect reads a table lattice from the page's drawn rectangles.
func (d *LatticeDetector) Detect(page *reader.PageData) ([]RawGrid, error) {
	if page == nil || len(page.Rules) == 0 {
		return nil, nil
	}

	hEdges, vEdges := d.collectEdges(page.Rules)
	if len(hEdges) < 2 || len(vEdges) < 2 {
		return nil, nil
	}

	hGroups := d.groupEdges(hEdges)
	vGroups := d.groupEdges(vEdges)
	if len(hGroups) < 2 || len(vGroups) < 2 {
		return nil, nil
	}

	grid, ok := d.buildLattice(hGroups, vGroups, page.Words)
	if !ok {
		return nil, nil
	}
	return []RawGrid{grid}, nil
}

// collectEdges decomposes rectangles into axis-aligned edges, dropping
// edges shorter than the minimum rule length. A thin drawn rule yields
// two near-identical long edges that later collapse into one group.
func (d *LatticeDetector) collectEdges(rects []model.BBox) (horizontal, vertical []edge) {
	for _, r := range rects {
		if r.Width >= d.config.MinLineLength {
			horizontal = append(horizontal,
				edge{pos: r.Bottom(), lo: r.Left(), hi: r.Right()},
				edge{pos: r.Top(), lo: r.Left(), hi: r.Right()},
			)
		}
		if r.Height >= d.config.MinLineLength {
			vertical = append(vertical,
				edge{pos: r.Left(), lo: r.Bottom(), hi: r.Top()},
				edge{pos: r.Right(), lo: r.Bottom(), hi: r.Top()},
			)
		}
	}
	return horizontal, vertical
}

// groupEdges clusters edges by position into ruled-line groups, keeping a
// running average position and the combined extent.
func (d *LatticeDetector) groupEdges(edges []edge) []edgeGroup {
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].pos < edges[j].pos
	})

	var groups []edgeGroup
	for _, e := range edges {
		if len(groups) > 0 {
			g := &groups[len(groups)-1]
			if e.pos-g.pos <= d.config.AlignmentTolerance {
				g.pos = (g.pos*float64(g.count) + e.pos) / float64(g.count+1)
				g.count++
				if e.lo < g.lo {
					g.lo = e.lo
				}
				if e.hi > g.hi {
					g.hi = e.hi
				}
				continue
			}
		}
		groups = append(groups, edgeGroup{pos: e.pos, lo: e.lo, hi: e.hi, count: 1})
	}
	return groups
}

// buildLattice assembles the grid from ruled-line groups and fills the
// cells with the page's words.
func (d *LatticeDetector) buildLattice(hGroups, vGroups []edgeGroup, words []reader.Word) (RawGrid, bool) {
	gridLeft, gridRight := positionRange(vGroups)
	gridBottom, gridTop := positionRange(hGroups)
	if gridRight <= gridLeft || gridTop <= gridBottom {
		return RawGrid{}, false
	}

	// Keep only lines spanning at least half the grid, so stray rules
	// elsewhere on the page do not inject phantom rows or columns.
	relevantH := filterBySpan(hGroups, gridLeft, gridRight)
	relevantV := filterBySpan(vGroups, gridBottom, gridTop)
	if len(relevantH) < 2 || len(relevantV) < 2 {
		return RawGrid{}, false
	}

	// Horizontal boundaries top to bottom, vertical left to right.
	sort.Slice(relevantH, func(i, j int) bool {
		return relevantH[i].pos > relevantH[j].pos
	})
	sort.Slice(relevantV, func(i, j int) bool {
		return relevantV[i].pos < relevantV[j].pos
	})

	rows := len(relevantH) - 1
	cols := len(relevantV) - 1

	cells := make([][]string, rows)
	for i := range cells {
		cells[i] = make([]string, cols)
	}

	ordered := make([]reader.Word, len(words))
	copy(ordered, words)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].BBox.Y != ordered[j].BBox.Y {
			return ordered[i].BBox.Y > ordered[j].BBox.Y
		}
		return ordered[i].BBox.X < ordered[j].BBox.X
	})

	for _, w := range ordered {
		row, col := findLatticeCell(w.BBox.Center(), relevantH, relevantV)
		if row < 0 || col < 0 {
			continue
		}
		if cells[row][col] != "" {
			cells[row][col] += " "
		}
		cells[row][col] += strings.TrimSpace(w.Text)
	}

	box := model.BBox{
		X:      relevantV[0].pos,
		Y:      relevantH[len(relevantH)-1].pos,
		Width:  relevantV[len(relevantV)-1].pos - relevantV[0].pos,
		Height: relevantH[0].pos - relevantH[len(relevantH)-1].pos,
	}

	return RawGrid{Cells: cells, BBox: box}, true
}

// findLatticeCell returns the row and column of the cell containing the
// point, or -1 for both when the point falls outside the lattice.
func findLatticeCell(p model.Point, hLines, vLines []edgeGroup) (row, col int) {
	row, col = -1, -1

	for i := 0; i < len(hLines)-1; i++ {
		if p.Y <= hLines[i].pos && p.Y >= hLines[i+1].pos {
			row = i
			break
		}
	}
	for j := 0; j < len(vLines)-1; j++ {
		if p.X >= vLines[j].pos && p.X <= vLines[j+1].pos {
			col = j
			break
		}
	}

	return row, col
}

// positionRange returns the minimum and maximum group positions.
func positionRange(groups []edgeGroup) (min, max float64) {
	min = groups[0].pos
	max = groups[0].pos
	for _, g := range groups[1:] {
		if g.pos < min {
			min = g.pos
		}
		if g.pos > max {
			max = g.pos
		}
	}
	return min, max
}

// filterBySpan keeps groups whose extent covers at least half of the
// given range and overlaps it.
func filterBySpan(groups []edgeGroup, lo, hi float64) []edgeGroup {
	required := (hi - lo) * 0.5

	var result []edgeGroup
	for _, g := range groups {
		if g.hi-g.lo < required {
			continue
		}
		overlapLo := g.lo
		if lo > overlapLo {
			overlapLo = lo
		}
		overlapHi := g.hi
		if hi < overlapHi {
			overlapHi = hi
		}
		if overlapHi > overlapLo {
			result = append(result, g)
		}
	}
	return result
}
