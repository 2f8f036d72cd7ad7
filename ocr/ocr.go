//go:build ocr

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client runs text recognition through a Tesseract engine instance. A
// client is not safe for concurrent use; create one per goroutine.
type Client struct {
	engine *gosseract.Client
}

// New creates a client with DefaultConfig.
func New() (*Client, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a client with custom engine settings. Close the
// client when done to release the engine.
func NewWithConfig(cfg Config) (*Client, error) {
	engine := gosseract.NewClient()
	if cfg.Language != "" {
		if err := engine.SetLanguage(cfg.Language); err != nil {
			engine.Close()
			return nil, fmt.Errorf("setting language %q: %w", cfg.Language, err)
		}
	}
	if err := engine.SetPageSegMode(gosseract.PageSegMode(cfg.Mode)); err != nil {
		engine.Close()
		return nil, fmt.Errorf("setting segmentation mode: %w", err)
	}
	return &Client{engine: engine}, nil
}

// Close releases the engine. Safe to call on a nil client.
func (c *Client) Close() error {
	if c == nil || c.engine == nil {
		return nil
	}
	return c.engine.Close()
}

// RecognizeImage runs OCR over an encoded image (PNG, JPEG, TIFF) and
// returns the recognized text, trimmed. An image with no readable text
// yields an empty string, not an error.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.engine.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("loading image: %w", err)
	}

	text, err := c.engine.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// RecognizeLayout runs OCR over an encoded image and returns the
// recognized text as positioned lines parsed from the engine's hOCR
// output.
func (c *Client) RecognizeLayout(imageData []byte) ([]Block, error) {
	if err := c.engine.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}

	out, err := c.engine.HOCRText()
	if err != nil {
		return nil, fmt.Errorf("recognizing layout: %w", err)
	}
	return ParseHOCR([]byte(out))
}
