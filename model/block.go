package model

import (
	"encoding/json"
	"fmt"
)

// BlockType identifies the kind of content block
type BlockType int

const (
	BlockParagraph BlockType = iota
	BlockTable
	BlockChart
)

// String returns the serialized name of the block type
func (t BlockType) String() string {
	switch t {
	case BlockParagraph:
		return "paragraph"
	case BlockTable:
		return "table"
	case BlockChart:
		return "chart"
	default:
		return "unknown"
	}
}

// Block is a typed content block within a page. Every block carries the
// section/subsection context that was active when it was emitted; both are
// nil when no heading has established a context yet.
type Block interface {
	// Type returns the block's variant tag
	Type() BlockType

	// Context returns the section/subsection labels (nil when absent)
	Context() (section, subSection *string)
}

// Paragraph is a run of body text
type Paragraph struct {
	Section    *string `json:"section"`
	SubSection *string `json:"sub_section"`
	Text       string  `json:"text"`
}

func (p *Paragraph) Type() BlockType { return BlockParagraph }

func (p *Paragraph) Context() (*string, *string) { return p.Section, p.SubSection }

// MarshalJSON emits the variant tag ahead of the paragraph fields
func (p *Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{Type: BlockParagraph.String(), alias: (*alias)(p)})
}

// Table is a rectangular (or ragged) grid of cell strings. Row 0 is
// conventionally a header row; this is not enforced.
type Table struct {
	Section     *string    `json:"section"`
	SubSection  *string    `json:"sub_section"`
	Description *string    `json:"description"`
	Data        [][]string `json:"table_data"`
}

func (t *Table) Type() BlockType { return BlockTable }

func (t *Table) Context() (*string, *string) { return t.Section, t.SubSection }

// MarshalJSON emits the variant tag ahead of the table fields
func (t *Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{Type: BlockTable.String(), alias: (*alias)(t)})
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Data)
}

// ColCount returns the number of columns in the first row
func (t *Table) ColCount() int {
	if len(t.Data) == 0 {
		return 0
	}
	return len(t.Data[0])
}

// Chart is a significant embedded image. Dimensions are pixel width and
// height; ImagePath is set only when the image was persisted to disk.
type Chart struct {
	Section     *string `json:"section"`
	SubSection  *string `json:"sub_section"`
	Description *string `json:"description"`
	Dimensions  [2]int  `json:"dimensions"`
	ImagePath   *string `json:"image_path"`
}

func (c *Chart) Type() BlockType { return BlockChart }

func (c *Chart) Context() (*string, *string) { return c.Section, c.SubSection }

// MarshalJSON emits the variant tag ahead of the chart fields
func (c *Chart) MarshalJSON() ([]byte, error) {
	type alias Chart
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{Type: BlockChart.String(), alias: (*alias)(c)})
}

// unmarshalBlock decodes one serialized block, dispatching on its "type" tag.
func unmarshalBlock(raw json.RawMessage) (Block, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("reading block type: %w", err)
	}

	switch probe.Type {
	case BlockParagraph.String():
		var p Paragraph
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return &p, nil
	case BlockTable.String():
		var t Table
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, err
		}
		return &t, nil
	case BlockChart.String():
		var c Chart
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return &c, nil
	default:
		return nil, fmt.Errorf("unknown block type %q", probe.Type)
	}
}
