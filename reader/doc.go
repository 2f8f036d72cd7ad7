// Package reader provides positioned PDF content access for the
// extraction pipeline.
//
// This package wraps two parsing backends behind one Document handle:
// text, geometry and font metrics come from github.com/ledongthuc/pdf,
// while embedded images come from github.com/pdfcpu/pdfcpu. A failure
// on the image side never fails the document; text extraction is the
// gate that decides whether a file is readable at all.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	doc, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
// Encrypted files take a password through [OpenWithPassword]. Open
// failures wrap one of two sentinels so callers can branch without
// string matching:
//
//   - [ErrEncrypted] - the file needs a (different) password
//   - [ErrInvalid]   - the file is not parseable as a PDF
//
// # Page Access
//
// Pages are 1-indexed, matching PDF conventions:
//
//	data, err := doc.Page(1) // first page
//
// [Document.Page] returns a [PageData] carrying the page's words,
// assembled lines, ruled rectangles and per-character font sizes, all
// in PDF user space (origin bottom-left, Y increasing upward).
//
// # Word and Line Assembly
//
// The underlying parser yields individual positioned characters. The
// reader groups them into [Word] values using per-character gap
// analysis scaled by font size, then stacks words into [Line] values
// by vertical band. Lines are ordered top to bottom, words within a
// line left to right.
//
// # Images
//
// [Document.EachPageImage] visits a page's embedded raster images with
// pixel dimensions, one at a time in object-number order, so image
// buffers stay scoped to a single image and repeated runs see the same
// indexing.
package reader
