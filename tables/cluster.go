package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/structura/model"
	"github.com/tsawler/structura/reader"
)

// ClusterDetector recovers tables from text alignment alone. It splits
// each visual line into cell runs at column-sized gaps, stacks
// consecutive multi-cell lines into a candidate region, and accepts the
// region when the runs align into stable columns.
type ClusterDetector struct {
	config Config
}

// NewClusterDetector creates an alignment detector with default configuration.
func NewClusterDetector() *ClusterDetector {
	return &ClusterDetector{config: DefaultConfig()}
}

// NewClusterDetectorWithConfig creates an alignment detector with the given
// configuration.
func NewClusterDetectorWithConfig(config Config) *ClusterDetector {
	return &ClusterDetector{config: config}
}

// Name returns the detector's identifier ("alignment").
func (d *ClusterDetector) Name() string {
	return "alignment"
}

// cellRun is one cell's worth of words on a line: a horizontal run
// separated from its neighbors by a column-sized gap.
type cellRun struct {
	text string
	bbox model.BBox
}

// tableRow is a line that splits into enough cell runs to look tabular.
type tableRow struct {
	line  reader.Line
	cells []cellRun
}

// Detect finds tables by clustering cell starts across consecutive lines.
func (d *ClusterDetector) Detect(page *reader.PageData) ([]RawGrid, error) {
	if page == nil || len(page.Lines) == 0 {
		return nil, nil
	}

	var grids []RawGrid
	for _, run := range d.collectRuns(page.Lines) {
		if grid, ok := d.buildGrid(run); ok {
			grids = append(grids, grid)
		}
	}
	return grids, nil
}

// collectRuns walks the page's lines top to bottom and gathers maximal
// runs of consecutive tabular lines. A line that splits into fewer than
// MinCols cells, or a vertical gap above RowGapLimit, ends the run.
func (d *ClusterDetector) collectRuns(lines []reader.Line) [][]tableRow {
	var runs [][]tableRow
	var current []tableRow

	closeRun := func() {
		if len(current) >= d.config.MinRows {
			runs = append(runs, current)
		}
		current = nil
	}

	for _, line := range lines {
		cells := d.splitCells(line)
		if len(cells) < d.config.MinCols {
			closeRun()
			continue
		}

		if len(current) > 0 {
			prev := current[len(current)-1].line
			if prev.BBox.Y-line.BBox.Top() > d.config.RowGapLimit {
				closeRun()
			}
		}
		current = append(current, tableRow{line: line, cells: cells})
	}
	closeRun()

	return runs
}

// splitCells slices a line's words into cell runs at gaps wider than the
// cell boundary threshold.
func (d *ClusterDetector) splitCells(line reader.Line) []cellRun {
	gapLimit := d.config.CellGapRatio * line.FontSize
	if gapLimit < d.config.MinCellGap {
		gapLimit = d.config.MinCellGap
	}

	var cells []cellRun
	var parts []string
	var box model.BBox
	open := false

	flush := func() {
		if !open {
			return
		}
		cells = append(cells, cellRun{text: strings.Join(parts, " "), bbox: box})
		parts = nil
		open = false
	}

	for i, w := range line.Words {
		if open && w.BBox.X-line.Words[i-1].BBox.Right() > gapLimit {
			flush()
		}
		if !open {
			box = w.BBox
			open = true
		} else {
			box = box.Union(w.BBox)
		}
		parts = append(parts, w.Text)
	}
	flush()

	return cells
}

// buildGrid turns a run of tabular rows into a raw grid, or reports
// false when the rows do not align into confident columns.
func (d *ClusterDetector) buildGrid(run []tableRow) (RawGrid, bool) {
	starts := make([]float64, 0, len(run)*d.config.MinCols)
	for _, row := range run {
		for _, c := range row.cells {
			starts = append(starts, c.bbox.X)
		}
	}
	sort.Float64s(starts)

	centers := clusterValues(starts, d.config.ColumnTolerance)
	centers = supportedColumns(run, centers)
	if len(centers) < d.config.MinCols {
		return RawGrid{}, false
	}

	if d.confidence(run, centers) < d.config.MinConfidence {
		return RawGrid{}, false
	}

	cells := make([][]string, len(run))
	box := run[0].line.BBox
	for i, row := range run {
		cells[i] = make([]string, len(centers))
		box = box.Union(row.line.BBox)
		for _, c := range row.cells {
			col := nearestColumn(c.bbox.X, centers)
			if cells[i][col] != "" {
				cells[i][col] += " "
			}
			cells[i][col] += c.text
		}
	}

	return RawGrid{Cells: cells, BBox: box}, true
}

// confidence scores a candidate region 0-1 by combining cell alignment
// against the column centers (50%), cell occupancy (30%), and the
// consistency of per-row cell counts (20%).
func (d *ClusterDetector) confidence(run []tableRow, centers []float64) float64 {
	aligned, total := 0, 0
	occupied := 0
	counts := make(map[int]int)

	for _, row := range run {
		seen := make(map[int]bool)
		for _, c := range row.cells {
			total++
			col := nearestColumn(c.bbox.X, centers)
			if math.Abs(c.bbox.X-centers[col]) <= d.config.ColumnTolerance {
				aligned++
			}
			seen[col] = true
		}
		occupied += len(seen)
		counts[len(row.cells)]++
	}

	if total == 0 {
		return 0
	}

	alignScore := float64(aligned) / float64(total)
	occScore := float64(occupied) / float64(len(run)*len(centers))

	mode := 0
	for _, n := range counts {
		if n > mode {
			mode = n
		}
	}
	countScore := float64(mode) / float64(len(run))

	return alignScore*0.5 + occScore*0.3 + countScore*0.2
}

// supportedColumns keeps column centers used by at least half the rows
// (and never fewer than two), so ragged prose with incidental gaps does
// not masquerade as a wide, mostly-empty table.
func supportedColumns(run []tableRow, centers []float64) []float64 {
	if len(centers) == 0 {
		return nil
	}

	support := make([]int, len(centers))
	for _, row := range run {
		seen := make(map[int]bool)
		for _, c := range row.cells {
			seen[nearestColumn(c.bbox.X, centers)] = true
		}
		for col := range seen {
			support[col]++
		}
	}

	required := (len(run) + 1) / 2
	if required < 2 {
		required = 2
	}

	var kept []float64
	for i, center := range centers {
		if support[i] >= required {
			kept = append(kept, center)
		}
	}
	return kept
}

// nearestColumn returns the index of the column center closest to x.
func nearestColumn(x float64, centers []float64) int {
	best := 0
	bestDist := math.Abs(x - centers[0])
	for i := 1; i < len(centers); i++ {
		if dist := math.Abs(x - centers[i]); dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

// clusterValues clusters nearby sorted values within the given tolerance,
// averaging values that fall within the tolerance of the cluster center.
func clusterValues(values []float64, tolerance float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	clustered := []float64{values[0]}

	for i := 1; i < len(values); i++ {
		diff := values[i] - clustered[len(clustered)-1]
		if diff > tolerance {
			clustered = append(clustered, values[i])
		} else {
			clustered[len(clustered)-1] = (clustered[len(clustered)-1] + values[i]) / 2
		}
	}

	return clustered
}
