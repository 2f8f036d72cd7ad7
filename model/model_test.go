package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

// ============================================================================
// Geometry Tests
// ============================================================================

func TestNewBBoxFromPoints(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want BBox
	}{
		{"corners in order", Point{10, 20}, Point{50, 70}, BBox{10, 20, 40, 50}},
		{"corners reversed", Point{50, 70}, Point{10, 20}, BBox{10, 20, 40, 50}},
		{"degenerate", Point{10, 10}, Point{10, 10}, BBox{10, 10, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBBoxFromPoints(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("NewBBoxFromPoints() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBBoxEdgesAndCenter(t *testing.T) {
	box := NewBBox(10, 20, 100, 50)

	edges := []struct {
		name string
		got  float64
		want float64
	}{
		{"Left", box.Left(), 10},
		{"Right", box.Right(), 110},
		{"Bottom", box.Bottom(), 20},
		{"Top", box.Top(), 70},
	}
	for _, e := range edges {
		if e.got != e.want {
			t.Errorf("%s() = %v, want %v", e.name, e.got, e.want)
		}
	}

	if c := box.Center(); c != (Point{60, 45}) {
		t.Errorf("Center() = %+v, want {60 45}", c)
	}
}

func TestBBoxContains(t *testing.T) {
	box := NewBBox(0, 0, 100, 100)

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"interior", Point{50, 50}, true},
		{"left edge", Point{0, 50}, true},
		{"right edge", Point{100, 50}, true},
		{"top corner", Point{100, 100}, true},
		{"left of box", Point{-1, 50}, false},
		{"right of box", Point{101, 50}, false},
		{"above box", Point{50, 101}, false},
		{"below box", Point{50, -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestBBoxUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		want BBox
	}{
		{"overlapping", NewBBox(0, 0, 50, 50), NewBBox(25, 25, 75, 75), BBox{0, 0, 100, 100}},
		{"disjoint", NewBBox(0, 0, 10, 10), NewBBox(90, 90, 10, 10), BBox{0, 0, 100, 100}},
		{"contained", NewBBox(0, 0, 100, 100), NewBBox(40, 40, 10, 10), BBox{0, 0, 100, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Block Tests
// ============================================================================

func TestBlockTypeString(t *testing.T) {
	tests := []struct {
		bt       BlockType
		expected string
	}{
		{BlockParagraph, "paragraph"},
		{BlockTable, "table"},
		{BlockChart, "chart"},
		{BlockType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if tt.bt.String() != tt.expected {
				t.Errorf("String() = %v, want %v", tt.bt.String(), tt.expected)
			}
		})
	}
}

func TestBlockInterface(t *testing.T) {
	section := strPtr("Results")
	sub := strPtr("Details")

	tests := []struct {
		name     string
		block    Block
		wantType BlockType
	}{
		{"paragraph", &Paragraph{Section: section, SubSection: sub, Text: "body"}, BlockParagraph},
		{"table", &Table{Section: section, Data: [][]string{{"a"}}}, BlockTable},
		{"chart", &Chart{Section: section, Dimensions: [2]int{10, 10}}, BlockChart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.block.Type() != tt.wantType {
				t.Errorf("Type() = %v, want %v", tt.block.Type(), tt.wantType)
			}
			gotSection, _ := tt.block.Context()
			if gotSection == nil || *gotSection != "Results" {
				t.Errorf("Context() section = %v, want Results", gotSection)
			}
		})
	}
}

func TestTableRowColCount(t *testing.T) {
	t.Run("normal table", func(t *testing.T) {
		table := &Table{Data: [][]string{{"a", "b", "c"}, {"1", "2", "3"}}}
		if table.RowCount() != 2 {
			t.Errorf("RowCount() = %d, want 2", table.RowCount())
		}
		if table.ColCount() != 3 {
			t.Errorf("ColCount() = %d, want 3", table.ColCount())
		}
	})

	t.Run("empty table", func(t *testing.T) {
		table := &Table{}
		if table.RowCount() != 0 {
			t.Errorf("empty table RowCount() = %d, want 0", table.RowCount())
		}
		if table.ColCount() != 0 {
			t.Errorf("empty table ColCount() = %d, want 0", table.ColCount())
		}
	})
}

// ============================================================================
// JSON Contract Tests
// ============================================================================

func TestParagraphJSON(t *testing.T) {
	tests := []struct {
		name     string
		block    *Paragraph
		expected string
	}{
		{
			"with context",
			&Paragraph{Section: strPtr("Intro"), SubSection: strPtr("Background"), Text: "Hello"},
			`{"type":"paragraph","section":"Intro","sub_section":"Background","text":"Hello"}`,
		},
		{
			"no context",
			&Paragraph{Text: "Hello"},
			`{"type":"paragraph","section":null,"sub_section":null,"text":"Hello"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.block)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.expected {
				t.Errorf("Marshal() = %s, want %s", data, tt.expected)
			}
		})
	}
}

func TestTableJSON(t *testing.T) {
	table := &Table{
		Section: strPtr("Financial Data"),
		Data:    [][]string{{"Year", "Revenue"}, {"2022", "$10M"}},
	}

	data, err := json.Marshal(table)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	expected := `{"type":"table","section":"Financial Data","sub_section":null,"description":null,"table_data":[["Year","Revenue"],["2022","$10M"]]}`
	if string(data) != expected {
		t.Errorf("Marshal() = %s, want %s", data, expected)
	}
}

func TestChartJSON(t *testing.T) {
	t.Run("persisted with description", func(t *testing.T) {
		chart := &Chart{
			Section:     strPtr("Performance"),
			Description: strPtr("Bar chart"),
			Dimensions:  [2]int{800, 600},
			ImagePath:   strPtr("out/extracted_image_page1_img0.png"),
		}

		data, err := json.Marshal(chart)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		expected := `{"type":"chart","section":"Performance","sub_section":null,"description":"Bar chart","dimensions":[800,600],"image_path":"out/extracted_image_page1_img0.png"}`
		if string(data) != expected {
			t.Errorf("Marshal() = %s, want %s", data, expected)
		}
	})

	t.Run("bare chart", func(t *testing.T) {
		chart := &Chart{Dimensions: [2]int{300, 300}}

		data, err := json.Marshal(chart)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		expected := `{"type":"chart","section":null,"sub_section":null,"description":null,"dimensions":[300,300],"image_path":null}`
		if string(data) != expected {
			t.Errorf("Marshal() = %s, want %s", data, expected)
		}
	})
}

func TestPageJSON(t *testing.T) {
	t.Run("empty page serializes empty content", func(t *testing.T) {
		page := &Page{Number: 3}

		data, err := json.Marshal(page)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		expected := `{"page_number":3,"content":[]}`
		if string(data) != expected {
			t.Errorf("Marshal() = %s, want %s", data, expected)
		}
	})

	t.Run("page with blocks", func(t *testing.T) {
		page := NewPage(612, 792)
		page.Number = 1
		page.AddBlock(&Paragraph{Text: "one"})

		data, err := json.Marshal(page)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		expected := `{"page_number":1,"content":[{"type":"paragraph","section":null,"sub_section":null,"text":"one"}]}`
		if string(data) != expected {
			t.Errorf("Marshal() = %s, want %s", data, expected)
		}
	})
}

func TestDocumentMarshalIndentJSON(t *testing.T) {
	doc := NewDocument()
	page := NewPage(612, 792)
	page.AddBlock(&Paragraph{Section: strPtr("Intro"), Text: "Hello <world>"})
	doc.AddPage(page)

	data, err := doc.MarshalIndentJSON()
	if err != nil {
		t.Fatalf("MarshalIndentJSON() error = %v", err)
	}

	out := string(data)
	if !strings.HasPrefix(out, "{\n  \"pages\": [\n") {
		t.Errorf("output should be two-space indented, got prefix %q", out[:20])
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("output should end with a newline")
	}
	if strings.Contains(out, `<`) {
		t.Error("HTML escaping should be disabled")
	}
	if !strings.Contains(out, `"Hello <world>"`) {
		t.Error("text should serialize unescaped")
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := NewDocument()

	page1 := NewPage(612, 792)
	page1.AddBlock(&Paragraph{Section: strPtr("Intro"), SubSection: strPtr("Background"), Text: "Opening words"})
	page1.AddBlock(&Table{
		Section: strPtr("Financial Data"),
		Data:    [][]string{{"Year", "Revenue", "Profit"}, {"2022", "$10M", "$2M"}},
	})
	page1.AddBlock(&Chart{
		Section:     strPtr("Performance"),
		Description: strPtr("Bar chart showing yearly growth"),
		Dimensions:  [2]int{800, 600},
		ImagePath:   strPtr("extracted_image_page1_img0.png"),
	})
	doc.AddPage(page1)

	page2 := NewPage(612, 792) // empty page survives the trip
	doc.AddPage(page2)

	data, err := doc.MarshalIndentJSON()
	if err != nil {
		t.Fatalf("MarshalIndentJSON() error = %v", err)
	}

	parsed, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}

	if parsed.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", parsed.PageCount())
	}
	if parsed.Pages[0].Number != 1 || parsed.Pages[1].Number != 2 {
		t.Error("page numbers not preserved")
	}
	if len(parsed.Pages[0].Content) != 3 {
		t.Fatalf("page 1 block count = %d, want 3", len(parsed.Pages[0].Content))
	}
	if len(parsed.Pages[1].Content) != 0 {
		t.Errorf("page 2 block count = %d, want 0", len(parsed.Pages[1].Content))
	}

	para, ok := parsed.Pages[0].Content[0].(*Paragraph)
	if !ok {
		t.Fatal("block 0 should be a Paragraph")
	}
	if para.Text != "Opening words" || *para.Section != "Intro" || *para.SubSection != "Background" {
		t.Errorf("paragraph fields not preserved: %+v", para)
	}

	table, ok := parsed.Pages[0].Content[1].(*Table)
	if !ok {
		t.Fatal("block 1 should be a Table")
	}
	if table.RowCount() != 2 || table.Data[1][1] != "$10M" {
		t.Errorf("table data not preserved: %+v", table.Data)
	}
	if table.Description != nil {
		t.Error("nil description should stay nil")
	}

	chart, ok := parsed.Pages[0].Content[2].(*Chart)
	if !ok {
		t.Fatal("block 2 should be a Chart")
	}
	if chart.Dimensions != [2]int{800, 600} {
		t.Errorf("chart dimensions = %v, want [800 600]", chart.Dimensions)
	}
	if chart.ImagePath == nil || *chart.ImagePath != "extracted_image_page1_img0.png" {
		t.Errorf("chart image path not preserved: %v", chart.ImagePath)
	}

	// Re-serialize and compare byte-for-byte for schema stability.
	data2, err := parsed.MarshalIndentJSON()
	if err != nil {
		t.Fatalf("second MarshalIndentJSON() error = %v", err)
	}
	if string(data) != string(data2) {
		t.Error("round-tripped document does not re-serialize identically")
	}
}

func TestPageUnmarshalUnknownType(t *testing.T) {
	raw := `{"page_number":1,"content":[{"type":"diagram"}]}`

	var page Page
	err := json.Unmarshal([]byte(raw), &page)
	if err == nil {
		t.Fatal("expected error for unknown block type")
	}
	if !strings.Contains(err.Error(), "diagram") {
		t.Errorf("error should name the unknown type, got %v", err)
	}
}

// ============================================================================
// Document Tests
// ============================================================================

func TestNewDocument(t *testing.T) {
	doc := NewDocument()

	if doc == nil {
		t.Fatal("NewDocument() returned nil")
	}
	if doc.Pages == nil {
		t.Error("Pages not initialized")
	}
	if len(doc.Pages) != 0 {
		t.Errorf("Pages should be empty, got %d", len(doc.Pages))
	}
}

func TestDocumentAddPage(t *testing.T) {
	doc := NewDocument()
	page1 := NewPage(612, 792)
	page2 := NewPage(612, 792)

	doc.AddPage(page1)
	doc.AddPage(page2)

	if len(doc.Pages) != 2 {
		t.Errorf("expected 2 pages, got %d", len(doc.Pages))
	}
	if page1.Number != 1 {
		t.Errorf("page1.Number = %d, want 1", page1.Number)
	}
	if page2.Number != 2 {
		t.Errorf("page2.Number = %d, want 2", page2.Number)
	}
}

func TestDocumentGetPage(t *testing.T) {
	doc := NewDocument()
	page := NewPage(612, 792)
	doc.AddPage(page)

	t.Run("valid page", func(t *testing.T) {
		p := doc.GetPage(1)
		if p != page {
			t.Error("GetPage(1) didn't return the correct page")
		}
	})

	t.Run("page 0", func(t *testing.T) {
		p := doc.GetPage(0)
		if p != nil {
			t.Error("GetPage(0) should return nil")
		}
	})

	t.Run("out of range", func(t *testing.T) {
		p := doc.GetPage(10)
		if p != nil {
			t.Error("GetPage(10) should return nil")
		}
	})
}

func TestDocumentText(t *testing.T) {
	doc := NewDocument()
	page1 := NewPage(612, 792)
	page1.AddBlock(&Paragraph{Text: "Page 1 text"})

	page2 := NewPage(612, 792)
	page2.AddBlock(&Paragraph{Text: "Page 2 text"})
	page2.AddBlock(&Table{Data: [][]string{{"skipped"}}})

	doc.AddPage(page1)
	doc.AddPage(page2)

	text := doc.Text()
	if !strings.Contains(text, "Page 1 text") {
		t.Error("Text() missing page 1 content")
	}
	if !strings.Contains(text, "Page 2 text") {
		t.Error("Text() missing page 2 content")
	}
	if strings.Contains(text, "skipped") {
		t.Error("Text() should only include paragraph blocks")
	}
}

func TestDocumentTables(t *testing.T) {
	doc := NewDocument()
	page := NewPage(612, 792)
	page.AddBlock(&Paragraph{Text: "Text"})
	page.AddBlock(&Table{Data: [][]string{{"a"}, {"b"}}})
	doc.AddPage(page)

	tables := doc.Tables()
	if len(tables) != 1 {
		t.Errorf("Tables() returned %d tables, want 1", len(tables))
	}
}

func TestDocumentStats(t *testing.T) {
	doc := NewDocument()

	page1 := NewPage(612, 792)
	page1.AddBlock(&Paragraph{Section: strPtr("Introduction"), Text: "a"})
	page1.AddBlock(&Paragraph{Section: strPtr("Introduction"), SubSection: strPtr("Scope"), Text: "b"})
	page1.AddBlock(&Table{Section: strPtr("Results"), Data: [][]string{{"h"}, {"v"}}})
	doc.AddPage(page1)

	page2 := NewPage(612, 792)
	page2.AddBlock(&Chart{Section: strPtr("Results"), Dimensions: [2]int{100, 100}})
	doc.AddPage(page2)

	stats := doc.Stats()

	if stats.Pages != 2 {
		t.Errorf("Pages = %d, want 2", stats.Pages)
	}
	if stats.Blocks != 4 {
		t.Errorf("Blocks = %d, want 4", stats.Blocks)
	}
	if stats.Paragraphs != 2 || stats.Tables != 1 || stats.Charts != 1 {
		t.Errorf("type counts = (%d, %d, %d), want (2, 1, 1)",
			stats.Paragraphs, stats.Tables, stats.Charts)
	}
	if len(stats.Sections) != 2 {
		t.Fatalf("Sections = %v, want 2 unique", stats.Sections)
	}
	if stats.Sections[0] != "Introduction" || stats.Sections[1] != "Results" {
		t.Errorf("Sections not sorted: %v", stats.Sections)
	}
	if len(stats.Subsections) != 1 || stats.Subsections[0] != "Scope" {
		t.Errorf("Subsections = %v, want [Scope]", stats.Subsections)
	}
}

// ============================================================================
// Page Tests
// ============================================================================

func TestNewPage(t *testing.T) {
	page := NewPage(612, 792)

	if page.Width != 612 || page.Height != 792 {
		t.Errorf("page dimensions = (%v, %v), want (612, 792)", page.Width, page.Height)
	}
	if page.Content == nil {
		t.Error("Content not initialized")
	}
}

func TestPageAddBlock(t *testing.T) {
	page := NewPage(612, 792)
	page.AddBlock(&Paragraph{Text: "Test"})

	if page.BlockCount() != 1 {
		t.Errorf("expected 1 block, got %d", page.BlockCount())
	}
}

// ============================================================================
// Table Export Tests
// ============================================================================

func TestTableToMarkdown(t *testing.T) {
	table := &Table{Data: [][]string{
		{"Year", "Revenue"},
		{"2022", "$10M"},
		{"2023", "$12M"},
	}}

	want := "| Year | Revenue |\n" +
		"|---|---|\n" +
		"| 2022 | $10M |\n" +
		"| 2023 | $12M |\n"
	if got := table.ToMarkdown(); got != want {
		t.Errorf("ToMarkdown() = %q, want %q", got, want)
	}
}

func TestTableToMarkdown_FlattensNewlines(t *testing.T) {
	table := &Table{Data: [][]string{
		{"Metric"},
		{"net\nincome"},
	}}

	if md := table.ToMarkdown(); !strings.Contains(md, "| net income |") {
		t.Errorf("cell newline not flattened: %q", md)
	}
}

func TestTableToMarkdown_Empty(t *testing.T) {
	table := &Table{}
	if md := table.ToMarkdown(); md != "" {
		t.Errorf("empty table ToMarkdown() = %q, want empty", md)
	}
}

func TestTableToCSV(t *testing.T) {
	tests := []struct {
		name string
		data [][]string
		want string
	}{
		{
			"plain cells",
			[][]string{{"Year", "Revenue"}, {"2022", "$10M"}},
			"Year,Revenue\n2022,$10M\n",
		},
		{
			"comma quoted",
			[][]string{{"Portland, OR", "branch"}},
			"\"Portland, OR\",branch\n",
		},
		{
			"quote doubled",
			[][]string{{`the "net" figure`}},
			"\"the \"\"net\"\" figure\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &Table{Data: tt.data}
			if got := table.ToCSV(); got != tt.want {
				t.Errorf("ToCSV() = %q, want %q", got, tt.want)
			}
		})
	}
}
