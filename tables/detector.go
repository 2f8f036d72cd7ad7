package tables

import (
	"github.com/tsawler/structura/model"
	"github.com/tsawler/structura/reader"
)

// RawGrid is a detected table before block conversion: a rectangular
// cell matrix plus the page region it was recovered from.
type RawGrid struct {
	// Cells holds the table content, row-major. Every row has the same
	// number of cells; missing cells are empty strings.
	Cells [][]string

	// BBox is the table's region on the page, used to splice the table
	// into the page's block order and to withhold its lines from
	// paragraph assembly.
	BBox model.BBox
}

// RowCount returns the number of rows in the grid.
func (g RawGrid) RowCount() int {
	return len(g.Cells)
}

// ColCount returns the number of columns in the grid.
func (g RawGrid) ColCount() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return len(g.Cells[0])
}

// Detector is the interface for table detection algorithms
type Detector interface {
	// Detect finds table grids on a page
	Detect(page *reader.PageData) ([]RawGrid, error)

	// Name returns the detector name
	Name() string
}

// Config holds detector configuration
type Config struct {
	// Minimum rows for a candidate table
	MinRows int

	// Minimum columns for a candidate table
	MinCols int

	// Minimum confidence threshold (0-1) for the alignment detector
	MinConfidence float64

	// Maximum drift between cell start positions assigned to the same
	// column (points)
	ColumnTolerance float64

	// Gap between words treated as a cell boundary, as a multiple of the
	// line's font size
	CellGapRatio float64

	// Lower bound for the cell boundary gap (points), guarding tiny fonts
	MinCellGap float64

	// Maximum vertical gap between consecutive table rows (points)
	RowGapLimit float64

	// Tolerance for treating drawn edges as the same ruled line (points)
	AlignmentTolerance float64

	// Minimum drawn edge length to count as a table rule (points)
	MinLineLength float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MinRows:            2,
		MinCols:            2,
		MinConfidence:      0.5,
		ColumnTolerance:    12.0,
		CellGapRatio:       1.0,
		MinCellGap:         6.0,
		RowGapLimit:        30.0,
		AlignmentTolerance: 3.0,
		MinLineLength:      10.0,
	}
}
