package structura

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/tsawler/structura/model"
	"github.com/tsawler/structura/reader"
)

// Extractor provides a fluent interface for converting a PDF into
// structured pages. Configuration methods return a new Extractor, so a
// partially configured extractor can be shared and reused; terminal
// operations (Extract, JSON, Text, PageCount) do the work.
type Extractor struct {
	filename string
	doc      *reader.Document
	options  ExtractOptions
	log      *slog.Logger
	err      error
	warnings []Warning
}

// clone creates a copy of the extractor with deep-copied options. The
// clone starts without a document handle: each terminal operation opens
// its own, so sibling clones never close a handle out from under each
// other.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		options:  e.options.clone(),
		log:      e.log,
		err:      e.err,
	}
}

// === Configuration methods (chainable) ===

// Pages restricts extraction to the given 1-indexed pages. Duplicates
// are ignored and the selection is processed in ascending order; pages
// keep their source numbers in the output. Calling Pages multiple times
// accumulates pages.
//
// Example:
//
//	doc, _, err := structura.Open("report.pdf").Pages(1, 3, 5).Extract()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newE := e.clone()
	newE.options.pages = append(newE.options.pages, pages...)
	return newE
}

// PageRange restricts extraction to the inclusive 1-indexed range
// [start, end]. Like Pages, it accumulates with earlier selections.
//
// Example:
//
//	doc, _, err := structura.Open("report.pdf").PageRange(2, 6).Extract()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newE := e.clone()
	if start < 1 || end < start {
		newE.err = fmt.Errorf("invalid page range %d-%d", start, end)
		return newE
	}
	for p := start; p <= end; p++ {
		newE.options.pages = append(newE.options.pages, p)
	}
	return newE
}

// Password supplies the password for an encrypted PDF. Without it (or
// with the wrong one), terminal operations fail with reader.ErrEncrypted.
func (e *Extractor) Password(password string) *Extractor {
	newE := e.clone()
	newE.options.password = password
	return newE
}

// EnableOCR turns on OCR for chart descriptions. Each kept chart image
// is run through Tesseract and the recognized text becomes the chart's
// description. Requires building with -tags ocr and a Tesseract
// installation; when OCR is unavailable at runtime the extraction
// continues with a warning and descriptions stay null.
func (e *Extractor) EnableOCR() *Extractor {
	newE := e.clone()
	newE.options.enableOCR = true
	return newE
}

// ImageDir sets the directory where kept chart images are written as
// PNG files named extracted_image_page<N>_img<K>.png. The directory is
// created on first write. Without it, chart blocks carry no image path.
func (e *Extractor) ImageDir(dir string) *Extractor {
	newE := e.clone()
	newE.options.imageDir = dir
	return newE
}

// DocumentContext carries section and subsection state across page
// boundaries instead of resetting it on every page. Use this for
// reports whose chapters span pages; the default per-page reset suits
// documents where pages are independent units.
func (e *Extractor) DocumentContext() *Extractor {
	newE := e.clone()
	newE.options.documentContext = true
	return newE
}

// MaxParagraphLength sets the character count beyond which consecutive
// body lines are split into separate paragraph blocks. Values below 1
// are ignored. The default is 500. A single line longer than the limit
// is kept whole.
func (e *Extractor) MaxParagraphLength(n int) *Extractor {
	newE := e.clone()
	if n >= 1 {
		newE.options.maxParagraphLen = n
	}
	return newE
}

// OnPage registers a progress callback invoked before each page is
// processed, with the 1-indexed source page number and the total number
// of selected pages. The callback runs on the extracting goroutine and
// should return quickly.
func (e *Extractor) OnPage(fn func(page, total int)) *Extractor {
	newE := e.clone()
	newE.options.onPage = fn
	return newE
}

// WithLogger sets the logger used for per-page progress (Debug) and
// degradation warnings (Warn). Defaults to slog.Default().
func (e *Extractor) WithLogger(log *slog.Logger) *Extractor {
	newE := e.clone()
	newE.log = log
	return newE
}

// === Terminal operations ===

// Extract processes the selected pages and returns the structured
// document together with any warnings accumulated along the way. The
// returned error is nil unless the document itself could not be
// processed (unreadable file, wrong password, invalid page selection);
// per-page and per-feature failures degrade into warnings instead.
func (e *Extractor) Extract() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	// Each run collects its own warnings.
	e.warnings = nil
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	pageNumbers, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}

	asm := e.newAssembler()
	defer asm.close()

	doc := model.NewDocument()
	total := len(pageNumbers)
	for _, n := range pageNumbers {
		if e.options.onPage != nil {
			e.options.onPage(n, total)
		}
		e.logger().Debug("extracting page", "page", n, "total", total)

		// Appending directly keeps source numbering for page subsets.
		doc.Pages = append(doc.Pages, e.extractPage(asm, n))
	}

	return doc, e.warnings, nil
}

// JSON extracts the selected pages and returns the document as
// 2-space-indented JSON with a trailing newline.
func (e *Extractor) JSON() ([]byte, []Warning, error) {
	doc, warnings, err := e.Extract()
	if err != nil {
		return nil, warnings, err
	}
	data, err := doc.MarshalIndentJSON()
	if err != nil {
		return nil, warnings, fmt.Errorf("encoding document: %w", err)
	}
	return data, warnings, nil
}

// Text extracts the selected pages and returns their plain text: block
// texts joined by blank lines, table rows rendered tab-separated, chart
// descriptions included when present.
func (e *Extractor) Text() (string, []Warning, error) {
	doc, warnings, err := e.Extract()
	if err != nil {
		return "", warnings, err
	}
	return doc.Text(), warnings, nil
}

// PageCount returns the number of pages in the document. Unlike the
// other terminal operations it leaves the document open, so a later
// terminal on the same extractor reuses the handle. Configuration
// methods still return fresh clones that open their own handle.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureReader(); err != nil {
		return 0, err
	}
	return e.doc.PageCount(), nil
}

// Close releases the underlying document handle. Terminal operations
// other than PageCount close automatically; Close is idempotent and
// only needed after PageCount or to abandon an extractor early.
func (e *Extractor) Close() error {
	if e.doc != nil {
		err := e.doc.Close()
		e.doc = nil
		return err
	}
	return nil
}

// === Internal helpers ===

// ensureReader opens the PDF if it is not already open.
func (e *Extractor) ensureReader() error {
	if e.doc != nil {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	doc, err := reader.OpenWithPassword(e.filename, e.options.password)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}

	e.doc = doc
	return nil
}

// resolvePages validates the configured page selection against the
// document and returns the 1-indexed pages to process, deduplicated and
// in ascending order. An empty selection means all pages.
func (e *Extractor) resolvePages() ([]int, error) {
	pageCount := e.doc.PageCount()

	if len(e.options.pages) == 0 {
		all := make([]int, pageCount)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	seen := make(map[int]bool)
	var selected []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p] {
			seen[p] = true
			selected = append(selected, p)
		}
	}

	sort.Ints(selected)
	return selected, nil
}

func (e *Extractor) logger() *slog.Logger {
	if e.log != nil {
		return e.log
	}
	return slog.Default()
}

// warn records a degradation and logs it at Warn level.
func (e *Extractor) warn(page int, op, message string, err error) {
	e.warnings = append(e.warnings, Warning{Page: page, Op: op, Message: message, Err: err})
	if err != nil {
		e.logger().Warn(message, "page", page, "op", op, "error", err)
		return
	}
	e.logger().Warn(message, "page", page, "op", op)
}
