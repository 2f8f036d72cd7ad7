// Package structura converts PDF documents into a structured JSON
// representation. Each page becomes a list of typed content blocks
// (paragraph, table, chart), and every block is tagged with the section
// and subsection it appears under, derived from heading detection.
//
// Basic usage:
//
//	doc, warnings, err := structura.Open("report.pdf").Extract()
//	if err != nil {
//		log.Fatal(err)
//	}
//	if len(warnings) > 0 {
//		log.Println("warnings:\n" + structura.FormatWarnings(warnings))
//	}
//	data, err := doc.MarshalIndentJSON()
//
// The extractor API is fluent; configuration methods return a new
// Extractor, so a configured extractor can be reused safely:
//
//	base := structura.Open("report.pdf").ImageDir("charts")
//	first, _, err := base.Pages(1).Extract()
//	rest, _, err := base.PageRange(2, 10).Extract()
//
// Extraction never fails on a single bad page, table, or image. Those
// problems degrade the affected block and surface as warnings; only
// document-level failures (missing file, encrypted or invalid PDF,
// out-of-range page selection) return an error.
package structura

import "fmt"

// Open creates an Extractor for the PDF at the given path. The file is
// not opened until a terminal operation (Extract, JSON, Text, PageCount)
// runs, so Open never fails; path errors surface from the terminal call.
//
// Example:
//
//	doc, warnings, err := structura.Open("quarterly.pdf").Extract()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// Must panics if err is non-nil, otherwise returns val. It allows
// one-line extraction in programs where failure is fatal anyway:
//
//	count := structura.Must(structura.Open("report.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("structura: %v", err))
	}
	return val
}

// MustExtract panics if err is non-nil, otherwise returns val,
// discarding warnings. It adapts the three-value terminal operations
// (Extract, JSON, Text) for one-line use:
//
//	doc := structura.MustExtract(structura.Open("report.pdf").Extract())
func MustExtract[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(fmt.Sprintf("structura: %v", err))
	}
	return val
}
