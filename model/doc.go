// Package model provides the output representation for extracted document
// content.
//
// This package defines the user-facing data structures that represent the
// hierarchical structure of a converted document. Extraction ultimately
// produces these types, making them the primary API for consuming results,
// and the types that define the JSON output contract.
//
// # Document Structure
//
// The [Document] type represents a complete document as an ordered sequence
// of pages:
//
//	doc := model.NewDocument()
//	doc.AddPage(page) // assigns the next 1-indexed page number
//
// Each [Page] carries its dimensions (used during extraction, not
// serialized) and an ordered list of [Block] values representing the page
// content.
//
// # Blocks
//
// All page content implements the [Block] interface. The concrete variants
// are:
//
//   - [Paragraph] - a run of body text
//   - [Table] - a grid of cell strings, with ToMarkdown() and ToCSV() export
//   - [Chart] - a significant embedded image with pixel dimensions
//
// Every block carries the section and subsection context active when it was
// emitted. Absent context serializes as JSON null.
//
// # Serialization
//
// [Document.MarshalIndentJSON] produces the stable output format:
//
//	{
//	  "pages": [
//	    {"page_number": 1, "content": [{"type": "paragraph", ...}, ...]}
//	  ]
//	}
//
// [ParseDocument] reads it back; blocks round-trip field-for-field.
//
// # Geometry
//
// Geometric primitives support position and layout calculations during
// extraction:
//
//   - [BBox] - bounding box with edge accessors, union, and containment
//   - [Point] - 2D position in PDF user space
package model
