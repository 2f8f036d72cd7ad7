package reader

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pcmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/structura/model"
)

var (
	// ErrEncrypted indicates a password-protected input that could not
	// be decrypted with the supplied password (or none was supplied).
	ErrEncrypted = errors.New("encrypted PDF")

	// ErrInvalid indicates the input is not a parseable PDF container.
	ErrInvalid = errors.New("invalid PDF")
)

// Letter-size defaults for pages without a resolvable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Document is an open PDF ready for per-page extraction. It holds one
// file handle for text parsing plus a fully-read image context, so the
// caller must Close it when done.
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader

	// imgCtx is nil when the image collaborator could not read the
	// file; imgErr preserves the reason for the caller's logs.
	imgCtx *pcmodel.Context
	imgErr error
}

// Open opens the PDF at path for extraction.
func Open(path string) (*Document, error) {
	return OpenWithPassword(path, "")
}

// OpenWithPassword opens a possibly password-protected PDF. An empty
// password behaves like Open. A wrong password surfaces as ErrEncrypted.
func OpenWithPassword(path, password string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	// The password callback is one-shot. Returning "" on the second
	// call stops the library's retry loop when the password is wrong.
	pw := password
	r, err := pdf.NewReaderEncrypted(f, fi.Size(), func() string {
		p := pw
		pw = ""
		return p
	})
	if err != nil {
		f.Close()
		if err == pdf.ErrInvalidPassword {
			return nil, fmt.Errorf("%s: %w", path, ErrEncrypted)
		}
		return nil, fmt.Errorf("%s: %w: %v", path, ErrInvalid, err)
	}

	doc := &Document{path: path, file: f, reader: r}
	doc.imgCtx, doc.imgErr = readImageContext(path, password)
	return doc, nil
}

// readImageContext loads the file a second time through pdfcpu, which
// needs its own pass over the container to index image objects. Failure
// here degrades image extraction only; text extraction is unaffected.
func readImageContext(path, password string) (*pcmodel.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := pcmodel.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}

	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("read image resources: %w", err)
	}
	return ctx, nil
}

// Close releases the underlying file handle.
func (d *Document) Close() error {
	if d == nil || d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Path returns the path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// Page extracts the text runs, ruled lines, and geometry of the
// 1-indexed page n. Parser faults on a single page are contained here
// and returned as errors, so one malformed page never aborts the
// document.
func (d *Document) Page(n int) (data *PageData, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("page %d: content parse: %v", n, r)
		}
	}()

	if n < 1 || n > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d: out of range (1-%d)", n, d.reader.NumPage())
	}

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", n)
	}

	width, height := mediaBoxSize(page.V)

	data = &PageData{
		Number: n,
		Width:  width,
		Height: height,
	}

	// A page without a content stream is valid PDF; report it as an
	// empty page rather than letting the stream reader panic.
	if !page.V.Key("Contents").IsNull() {
		content := page.Content()
		data.Words = buildWords(content.Text)
		data.FontSizes = charFontSizes(content.Text)
		data.Rules = contentRects(content.Rect)
		data.Lines = buildLines(data.Words)
	}
	return data, nil
}

// mediaBoxSize resolves the page dimensions, following the Parent chain
// for inherited MediaBox entries and falling back to US Letter.
func mediaBoxSize(v pdf.Value) (width, height float64) {
	for dict := v; !dict.IsNull(); dict = dict.Key("Parent") {
		mb := dict.Key("MediaBox")
		if mb.Kind() == pdf.Array && mb.Len() >= 4 {
			width = mb.Index(2).Float64() - mb.Index(0).Float64()
			height = mb.Index(3).Float64() - mb.Index(1).Float64()
			if width > 0 && height > 0 {
				return width, height
			}
		}
	}
	return defaultPageWidth, defaultPageHeight
}

// contentRects converts the page's drawn rectangles into bounding boxes.
// Thin rectangles are how most generators draw table rules.
func contentRects(rects []pdf.Rect) []model.BBox {
	if len(rects) == 0 {
		return nil
	}
	out := make([]model.BBox, 0, len(rects))
	for _, r := range rects {
		out = append(out, model.NewBBoxFromPoints(
			model.Point{X: r.Min.X, Y: r.Min.Y},
			model.Point{X: r.Max.X, Y: r.Max.Y},
		))
	}
	return out
}

// PageData is the extracted raw content of one page, in PDF coordinates
// (origin bottom-left, Y increasing upward).
type PageData struct {
	// Number is the 1-indexed page number.
	Number int

	// Width and Height are the page dimensions in points.
	Width, Height float64

	// Words are the page's text runs grouped into words, in stream order.
	Words []Word

	// Lines are the words grouped into visual lines, top to bottom.
	Lines []Line

	// Rules are rectangles drawn on the page, candidates for table
	// borders and cell separators.
	Rules []model.BBox

	// FontSizes holds the font size of every character on the page,
	// for median computation.
	FontSizes []float64
}

// IsEmpty reports whether the page has no extractable text.
func (p *PageData) IsEmpty() bool {
	return p == nil || len(p.Words) == 0
}
