package model

import (
	"bytes"
	"encoding/json"
)

// Document represents a fully extracted PDF document: an ordered sequence of
// pages built append-only during a single extraction pass. Page order matches
// source order and page numbers are 1-indexed and contiguous.
type Document struct {
	Pages []*Page `json:"pages"`
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Pages: make([]*Page, 0),
	}
}

// AddPage adds a page to the document, assigning the next page number
func (d *Document) AddPage(page *Page) {
	page.Number = len(d.Pages) + 1
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by number (1-indexed)
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return d.Pages[number-1]
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Text returns the paragraph text of all pages, pages separated by blank lines
func (d *Document) Text() string {
	var out string
	for _, page := range d.Pages {
		pageText := page.Text()
		if pageText == "" {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += pageText
	}
	return out
}

// Tables returns all table blocks from all pages, in page order
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, page := range d.Pages {
		for _, b := range page.Content {
			if t, ok := b.(*Table); ok {
				tables = append(tables, t)
			}
		}
	}
	return tables
}

// MarshalIndentJSON serializes the document in the output file format:
// pretty-printed UTF-8 JSON with two-space indent, HTML escaping disabled,
// and a trailing newline.
func (d *Document) MarshalIndentJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseDocument parses a serialized document produced by MarshalIndentJSON
// (or any JSON matching the output contract).
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Pages == nil {
		doc.Pages = make([]*Page, 0)
	}
	return &doc, nil
}
