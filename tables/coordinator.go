package tables

import (
	"fmt"
	"strings"

	"github.com/tsawler/structura/reader"
)

// Coordinator runs table detection as an explicit two-stage flow:
// the alignment detector first, a validation gate over its grids, then
// the lattice detector for pages where alignment recovery produced
// nothing acceptable. Fallback grids are trusted as-is.
type Coordinator struct {
	primary  Detector
	fallback Detector
}

// NewCoordinator creates a coordinator wiring the alignment detector as
// the primary stage and the lattice detector as the fallback.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		primary:  NewClusterDetector(),
		fallback: NewLatticeDetector(),
	}
}

// NewCoordinatorWithDetectors creates a coordinator with explicit stages.
func NewCoordinatorWithDetectors(primary, fallback Detector) *Coordinator {
	return &Coordinator{primary: primary, fallback: fallback}
}

// Extract returns the page's accepted table grids plus human-readable
// degradation notes for the warning stream. Detector failures are
// absorbed here: a page with no recoverable tables yields no grids and,
// where something actually went wrong, a note rather than an error.
func (c *Coordinator) Extract(page *reader.PageData) ([]RawGrid, []string, error) {
	if page == nil {
		return nil, nil, fmt.Errorf("nil page data")
	}

	var notes []string

	grids, err := c.primary.Detect(page)
	if err != nil {
		notes = append(notes, fmt.Sprintf("%s detection failed: %v", c.primary.Name(), err))
		grids = nil
	}

	var accepted []RawGrid
	for _, g := range grids {
		if reason, ok := validate(g); ok {
			accepted = append(accepted, g)
		} else {
			notes = append(notes, fmt.Sprintf("%s grid rejected: %s", c.primary.Name(), reason))
		}
	}
	if len(accepted) > 0 {
		return accepted, notes, nil
	}

	grids, err = c.fallback.Detect(page)
	if err != nil {
		notes = append(notes, fmt.Sprintf("%s detection failed: %v", c.fallback.Name(), err))
		return nil, notes, nil
	}
	return grids, notes, nil
}

// validate applies the acceptance gate to a primary-stage grid: at least
// two rows, and a header row with at least one non-blank cell. The
// second return is true when the grid passes; otherwise the first
// return carries the rejection reason.
func validate(g RawGrid) (string, bool) {
	if g.RowCount() < 2 {
		return fmt.Sprintf("only %d row(s)", g.RowCount()), false
	}
	for _, cell := range g.Cells[0] {
		if strings.TrimSpace(cell) != "" {
			return "", true
		}
	}
	return "empty header row", false
}
