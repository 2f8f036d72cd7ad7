package reader

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"sort"

	_ "image/gif"
	_ "image/jpeg"

	pdfcpulib "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// PageImage represents an extracted image from a PDF page.
type PageImage struct {
	// Data holds the encoded image bytes in Format.
	Data []byte

	// Format is the sniffed encoding ("png", "jpeg", "tiff", ...).
	Format string

	// Width and Height are the pixel dimensions.
	Width  int
	Height int

	// ObjNr is the image's PDF object number, stable across runs.
	ObjNr int
}

// PixelArea returns the image area in pixels.
func (img *PageImage) PixelArea() int {
	return img.Width * img.Height
}

// ToPNG returns the image encoded as PNG. Data already in PNG format is
// returned as-is; other formats are decoded and re-encoded. The result
// is suitable for OCR engines and for persisting to disk.
func (img *PageImage) ToPNG() ([]byte, error) {
	if img.Format == "png" {
		return img.Data, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("decode %s image: %w", img.Format, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EachPageImage visits the embedded images of the 1-indexed page n in
// object-number order, so repeated runs see the same indexing. Each
// image's bytes are read and sized just before fn runs, and the buffer
// goes out of scope when fn returns, so only one image is held at a
// time on image-heavy pages. Images in formats the decoder registry
// cannot size are skipped. A non-nil error from fn stops the walk and
// is returned.
func (d *Document) EachPageImage(n int, fn func(img PageImage) error) error {
	if d.imgCtx == nil {
		return d.imgErr
	}

	extracted, err := pdfcpulib.ExtractPageImages(d.imgCtx, n, false)
	if err != nil {
		return fmt.Errorf("page %d: extract images: %w", n, err)
	}

	objNrs := make([]int, 0, len(extracted))
	for objNr := range extracted {
		objNrs = append(objNrs, objNr)
	}
	sort.Ints(objNrs)

	for _, objNr := range objNrs {
		data, err := io.ReadAll(extracted[objNr])
		if err != nil || len(data) == 0 {
			continue
		}

		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
			continue
		}

		err = fn(PageImage{
			Data:   data,
			Format: format,
			Width:  cfg.Width,
			Height: cfg.Height,
			ObjNr:  objNr,
		})
		if err != nil {
			return err
		}
	}

	return nil
}
