package images

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsawler/structura/reader"
)

// Writer persists chart images as PNG files in a single directory.
type Writer struct {
	dir string
}

// NewWriter returns a writer rooted at dir. The directory is created on
// the first Save if it does not already exist.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Save re-encodes img as PNG and writes it under a deterministic name
// built from the 1-indexed page number and the image's 0-based position
// on that page. It returns the path of the written file.
func (w *Writer) Save(img reader.PageImage, pageNum, index int) (string, error) {
	data, err := img.ToPNG()
	if err != nil {
		return "", fmt.Errorf("encoding image %d on page %d: %w", index, pageNum, err)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}

	name := fmt.Sprintf("extracted_image_page%d_img%d.png", pageNum, index)
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}

	return path, nil
}
