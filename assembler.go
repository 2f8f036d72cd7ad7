package structura

import (
	"sort"
	"strings"

	"github.com/tsawler/structura/classify"
	"github.com/tsawler/structura/images"
	"github.com/tsawler/structura/model"
	"github.com/tsawler/structura/ocr"
	"github.com/tsawler/structura/reader"
	"github.com/tsawler/structura/tables"
)

// paragraphGapRatio is the fraction of a line's height that vertical
// whitespace must exceed to start a new paragraph.
const paragraphGapRatio = 0.8

// assembler bundles the collaborators for one extraction run. The
// tracker carries heading state between pages, so one assembler serves
// the whole run.
type assembler struct {
	classifier   *classify.Classifier
	tracker      *classify.Tracker
	coordinator  *tables.Coordinator
	charts       *images.Classifier
	writer       *images.Writer // nil when no image directory is configured
	ocr          *ocr.Client    // nil when OCR is disabled or unavailable
	maxParagraph int
}

func (e *Extractor) newAssembler() *assembler {
	scope := classify.ScopePage
	if e.options.documentContext {
		scope = classify.ScopeDocument
	}

	asm := &assembler{
		classifier:   classify.NewClassifier(),
		tracker:      classify.NewTrackerWithScope(scope),
		coordinator:  tables.NewCoordinator(),
		charts:       images.NewClassifier(),
		maxParagraph: e.options.maxParagraphLen,
	}

	if e.options.imageDir != "" {
		asm.writer = images.NewWriter(e.options.imageDir)
	}

	if e.options.enableOCR {
		client, err := ocr.New()
		if err != nil {
			e.warn(0, "ocr", "OCR unavailable, chart descriptions disabled", err)
		} else {
			asm.ocr = client
		}
	}

	return asm
}

func (a *assembler) close() {
	if a.ocr != nil {
		a.ocr.Close()
	}
}

// extractPage converts one source page into a model page. Failures
// degrade into warnings; the page is always emitted with its source
// number, empty if nothing could be read.
func (e *Extractor) extractPage(asm *assembler, n int) *model.Page {
	asm.tracker.StartPage()

	data, err := e.doc.Page(n)
	if err != nil {
		e.warn(n, "read", "page unreadable, emitting empty content", err)
		page := model.NewPage(0, 0)
		page.Number = n
		return page
	}

	page := model.NewPage(data.Width, data.Height)
	page.Number = n

	grids, notes, err := asm.coordinator.Extract(data)
	if err != nil {
		e.warn(n, "tables", "table extraction failed", err)
	}
	for _, note := range notes {
		e.warn(n, "tables", note, nil)
	}

	for _, b := range asm.pageBlocks(data, grids) {
		page.AddBlock(b)
	}

	e.appendCharts(asm, page, data, n)
	return page
}

// pageEvent is one item in the top-to-bottom page walk: either a text
// line or an accepted table grid, ordered by the top edge.
type pageEvent struct {
	top  float64
	grid *tables.RawGrid
	line *reader.Line
}

// pageBlocks walks the page's lines and table regions top to bottom and
// produces the ordered content blocks. Headings advance the tracker and
// emit their own paragraph block; body lines group into paragraphs,
// split on vertical gaps and on the configured length limit; each table
// becomes a table block at its vertical position, and the lines inside
// its region are withheld from paragraph assembly.
func (a *assembler) pageBlocks(data *reader.PageData, grids []tables.RawGrid) []model.Block {
	median := classify.MedianFontSize(data.FontSizes)

	events := make([]pageEvent, 0, len(data.Lines)+len(grids))
	for i := range grids {
		events = append(events, pageEvent{top: grids[i].BBox.Top(), grid: &grids[i]})
	}
	for i := range data.Lines {
		events = append(events, pageEvent{top: data.Lines[i].BBox.Top(), line: &data.Lines[i]})
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].top != events[j].top {
			return events[i].top > events[j].top
		}
		// A table whose top edge ties a line's goes first.
		return events[i].grid != nil && events[j].grid == nil
	})

	var blocks []model.Block
	var group paragraphGroup

	flush := func() {
		if b := group.flush(); b != nil {
			blocks = append(blocks, b)
		}
	}

	for _, ev := range events {
		if ev.grid != nil {
			flush()
			section, subSection := a.tracker.Current()
			blocks = append(blocks, &model.Table{
				Section:    section,
				SubSection: subSection,
				Data:       ev.grid.Cells,
			})
			continue
		}

		line := ev.line
		if insideAny(line.BBox, grids) {
			continue
		}

		class := a.classifier.Classify(classify.Candidate{
			Text:     line.Text,
			FontSize: line.FontSize,
			Bold:     line.Bold,
		}, median)

		if class.IsHeading() {
			flush()
			a.tracker.OnHeading(class, line.Text)
			section, subSection := a.tracker.Current()
			blocks = append(blocks, &model.Paragraph{
				Section:    section,
				SubSection: subSection,
				Text:       line.Text,
			})
			continue
		}

		if group.active() {
			gap := group.lastBottom - line.BBox.Top()
			if gap > line.BBox.Height*paragraphGapRatio || group.wouldOverflow(line.Text, a.maxParagraph) {
				flush()
			}
		}
		if !group.active() {
			group.start(a.tracker.Current())
		}
		group.add(line)
	}
	flush()

	return blocks
}

// appendCharts classifies the page's embedded images and appends a
// chart block for each one worth keeping, after the text and table
// blocks. Images are visited one at a time so only one byte buffer is
// live at once. OCR and persistence failures degrade the individual
// chart.
func (e *Extractor) appendCharts(asm *assembler, page *model.Page, data *reader.PageData, n int) {
	k := -1
	err := e.doc.EachPageImage(n, func(img reader.PageImage) error {
		k++
		if asm.charts.Classify(img.Width, img.Height, data.Width, data.Height) != images.Chart {
			return nil
		}

		section, subSection := asm.tracker.Current()
		chart := &model.Chart{
			Section:    section,
			SubSection: subSection,
			Dimensions: [2]int{img.Width, img.Height},
		}

		if asm.ocr != nil {
			desc := ""
			if text, ocrErr := asm.ocr.RecognizeImage(img.Data); ocrErr != nil {
				e.warn(n, "ocr", "chart OCR failed, description left empty", ocrErr)
			} else {
				desc = text
			}
			chart.Description = &desc
		}

		if asm.writer != nil {
			if path, saveErr := asm.writer.Save(img, n, k); saveErr != nil {
				e.warn(n, "images", "persisting chart image failed", saveErr)
			} else {
				chart.ImagePath = &path
			}
		}

		page.AddBlock(chart)
		return nil
	})
	if err != nil {
		e.warn(n, "images", "image extraction unavailable", err)
	}
}

// insideAny reports whether the line's center falls inside any accepted
// table region. Such lines are represented by the table block itself.
func insideAny(box model.BBox, grids []tables.RawGrid) bool {
	for _, g := range grids {
		if g.BBox.Contains(box.Center()) {
			return true
		}
	}
	return false
}

// paragraphGroup accumulates consecutive body lines into one paragraph.
// The section context is captured when the group starts, so a heading
// later on the page cannot relabel text above it.
type paragraphGroup struct {
	started    bool
	section    *string
	subSection *string
	parts      []string
	length     int
	lastBottom float64
}

func (g *paragraphGroup) active() bool { return g.started }

func (g *paragraphGroup) start(section, subSection *string) {
	g.started = true
	g.section = section
	g.subSection = subSection
	g.parts = g.parts[:0]
	g.length = 0
}

func (g *paragraphGroup) add(line *reader.Line) {
	if len(g.parts) > 0 {
		g.length++ // joining space
	}
	g.parts = append(g.parts, line.Text)
	g.length += len(line.Text)
	g.lastBottom = line.BBox.Bottom()
}

// wouldOverflow reports whether adding text would push the group past
// the length limit. A group that is still empty never overflows, so a
// single oversized line stays whole.
func (g *paragraphGroup) wouldOverflow(text string, max int) bool {
	if len(g.parts) == 0 {
		return false
	}
	return g.length+1+len(text) > max
}

// flush emits the accumulated paragraph, or nil when nothing is
// buffered, and resets the group.
func (g *paragraphGroup) flush() model.Block {
	if !g.started {
		return nil
	}
	g.started = false
	if len(g.parts) == 0 {
		return nil
	}
	return &model.Paragraph{
		Section:    g.section,
		SubSection: g.subSection,
		Text:       strings.Join(g.parts, " "),
	}
}
