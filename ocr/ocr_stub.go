//go:build !ocr

package ocr

// Client is the no-op stand-in compiled when the ocr build tag is
// absent. Every recognition entry point fails with ErrOCRNotEnabled.
type Client struct{}

// New reports that OCR support was not compiled in.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// NewWithConfig reports that OCR support was not compiled in.
func NewWithConfig(Config) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op. Safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage fails with ErrOCRNotEnabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// RecognizeLayout fails with ErrOCRNotEnabled.
func (c *Client) RecognizeLayout(imageData []byte) ([]Block, error) {
	return nil, ErrOCRNotEnabled
}
