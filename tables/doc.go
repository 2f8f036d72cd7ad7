// Package tables provides table detection and extraction from PDF pages.
//
// This package recovers tabular data from positioned page content,
// whether the table is expressed through text alignment alone or through
// drawn cell borders.
//
// # Detectors
//
// Detection is performed by types implementing the [Detector] interface.
// The package provides two:
//
//   - [ClusterDetector] ("alignment") - clusters cell runs by their
//     start positions across consecutive lines
//   - [LatticeDetector] ("lattice") - reads the cell matrix off ruled
//     lines reconstructed from drawn rectangles
//
// # Coordination
//
// [Coordinator] chains the detectors into the package's extraction
// policy: alignment detection first, then a validation gate (at least
// two rows, and a header row with at least one non-blank cell), then
// lattice detection for pages where nothing passed the gate. Lattice
// grids are trusted as-is since visible borders are strong evidence.
//
//	coord := tables.NewCoordinator()
//	grids, notes, err := coord.Extract(page)
//
// The notes carry human-readable degradation messages (rejected grids,
// detector failures) for the caller's warning stream.
//
// # Configuration
//
// Detector behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.MinRows = 3
//	config.MinConfidence = 0.7
//	detector := tables.NewClusterDetectorWithConfig(config)
//
// # Confidence Scoring
//
// Alignment detection confidence (0-1) combines:
//
//   - Cell alignment against column centers (50%)
//   - Cell occupancy (30%)
//   - Per-row cell count consistency (20%)
package tables
