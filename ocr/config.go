// Package ocr provides text recognition for chart images extracted from
// PDFs, wrapping the Tesseract engine via gosseract.
//
// Recognition is compiled in only with the "ocr" build tag, since it
// needs cgo and an installed Tesseract (apt-get install tesseract-ocr on
// Debian/Ubuntu, brew install tesseract on macOS):
//
//	go build -tags ocr
//
// Without the tag a stub Client is compiled whose constructor returns
// ErrOCRNotEnabled, so callers can degrade cleanly.
package ocr

import "errors"

// ErrOCRNotEnabled reports that the binary was built without the ocr tag.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// PageSegMode selects how the engine segments an image before
// recognition. Values follow Tesseract's numbering so they pass through
// to the engine unchanged.
type PageSegMode int

const (
	PSMAuto        PageSegMode = 3  // full automatic segmentation
	PSMSingleBlock PageSegMode = 6  // one uniform block of text
	PSMSingleLine  PageSegMode = 7  // one text line
	PSMSparseText  PageSegMode = 11 // find as much text as possible
)

// Config holds engine settings.
type Config struct {
	// Language is the Tesseract language code. Several languages can be
	// joined with "+", e.g. "eng+fra".
	Language string

	// Mode is the page segmentation mode.
	Mode PageSegMode
}

// DefaultConfig returns English recognition with automatic segmentation.
func DefaultConfig() Config {
	return Config{
		Language: "eng",
		Mode:     PSMAuto,
	}
}
