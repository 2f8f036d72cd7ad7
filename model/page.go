package model

import (
	"encoding/json"
	"fmt"
)

// Page represents a single page and its ordered content blocks. Width and
// Height are the page dimensions in PDF points; they feed area-ratio math
// during extraction and do not serialize.
type Page struct {
	Number  int
	Width   float64
	Height  float64
	Content []Block
}

// NewPage creates a new page with the given dimensions
func NewPage(width, height float64) *Page {
	return &Page{
		Width:   width,
		Height:  height,
		Content: make([]Block, 0),
	}
}

// AddBlock appends a content block to the page
func (p *Page) AddBlock(b Block) {
	p.Content = append(p.Content, b)
}

// BlockCount returns the number of content blocks on the page
func (p *Page) BlockCount() int {
	return len(p.Content)
}

// Text returns the text of all paragraph blocks, one per line
func (p *Page) Text() string {
	var out string
	for _, b := range p.Content {
		if para, ok := b.(*Paragraph); ok {
			if out != "" {
				out += "\n"
			}
			out += para.Text
		}
	}
	return out
}

// MarshalJSON serializes the page as {"page_number": N, "content": [...]}.
// An empty page serializes with "content": [] rather than null.
func (p *Page) MarshalJSON() ([]byte, error) {
	content := p.Content
	if content == nil {
		content = []Block{}
	}
	return json.Marshal(struct {
		Number  int     `json:"page_number"`
		Content []Block `json:"content"`
	}{Number: p.Number, Content: content})
}

// UnmarshalJSON parses a serialized page, dispatching each content entry on
// its "type" tag.
func (p *Page) UnmarshalJSON(data []byte) error {
	var raw struct {
		Number  int               `json:"page_number"`
		Content []json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Number = raw.Number
	p.Content = make([]Block, 0, len(raw.Content))
	for i, rb := range raw.Content {
		block, err := unmarshalBlock(rb)
		if err != nil {
			return fmt.Errorf("page %d, block %d: %w", raw.Number, i, err)
		}
		p.Content = append(p.Content, block)
	}
	return nil
}
