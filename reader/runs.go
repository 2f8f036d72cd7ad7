package reader

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/structura/model"
)

const (
	// wordGapRatio is the fraction of the font size above which a
	// horizontal gap between characters starts a new word.
	wordGapRatio = 0.3

	// wordGapFallback is the gap threshold in points for characters
	// with no usable font size.
	wordGapFallback = 3.0

	// lineYTolerance is the vertical distance in points within which
	// words are considered part of the same visual line.
	lineYTolerance = 5.0
)

// Word is a run of adjacent characters sharing a baseline.
type Word struct {
	// Text is the word's NFC-normalized text.
	Text string

	// FontSize is the font size of the word's first character.
	FontSize float64

	// Font is the font resource name of the word's first character.
	Font string

	// BBox spans the word's characters. Height approximates the font
	// size since the parser reports baselines, not glyph extents.
	BBox model.BBox
}

// Bold reports whether the word's font name carries a bold face marker.
func (w Word) Bold() bool {
	return isBoldFont(w.Font)
}

// Line is a visual line of words ordered left to right.
type Line struct {
	// Text is the words joined with single spaces.
	Text string

	// FontSize is the average font size across the line's words.
	FontSize float64

	// Bold reports whether any word on the line uses a bold face.
	Bold bool

	// BBox is the union of the word boxes.
	BBox model.BBox

	// Words are the line's words, left to right.
	Words []Word
}

// buildWords groups character-level runs into words. Characters join
// the current word while they share a baseline and the horizontal gap
// stays below the word-break threshold; whitespace characters always
// close the current word.
func buildWords(chars []pdf.Text) []Word {
	var words []Word

	var (
		cur   strings.Builder
		first pdf.Text
		right float64
		open  bool
	)

	flush := func() {
		if !open {
			return
		}
		text := norm.NFC.String(cur.String())
		if text != "" {
			words = append(words, Word{
				Text:     text,
				FontSize: first.FontSize,
				Font:     first.Font,
				BBox: model.NewBBox(
					first.X, first.Y,
					math.Max(right-first.X, 0), first.FontSize,
				),
			})
		}
		cur.Reset()
		open = false
	}

	for _, c := range chars {
		if strings.TrimSpace(c.S) == "" {
			flush()
			continue
		}

		if open {
			gap := c.X - right
			threshold := wordGapRatio * c.FontSize
			if threshold <= 0 {
				threshold = wordGapFallback
			}
			if math.Abs(c.Y-first.Y) > lineYTolerance || gap > threshold || gap < -first.FontSize {
				flush()
			}
		}

		if !open {
			first = c
			right = c.X
			open = true
		}
		cur.WriteString(c.S)
		if end := c.X + c.W; end > right {
			right = end
		}
	}
	flush()

	return words
}

// buildLines groups words into visual lines by baseline proximity and
// orders the result top to bottom, words left to right within a line.
func buildLines(words []Word) []Line {
	if len(words) == 0 {
		return nil
	}

	type bucket struct {
		yMin, yMax float64
		words      []Word
	}

	var buckets []*bucket
	for _, w := range words {
		var home *bucket
		for _, b := range buckets {
			if w.BBox.Y >= b.yMin-lineYTolerance && w.BBox.Y <= b.yMax+lineYTolerance {
				home = b
				break
			}
		}
		if home == nil {
			home = &bucket{yMin: w.BBox.Y, yMax: w.BBox.Y}
			buckets = append(buckets, home)
		}
		home.words = append(home.words, w)
		if w.BBox.Y < home.yMin {
			home.yMin = w.BBox.Y
		}
		if w.BBox.Y > home.yMax {
			home.yMax = w.BBox.Y
		}
	}

	// Higher Y first: PDF coordinates grow upward.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].yMax > buckets[j].yMax
	})

	lines := make([]Line, 0, len(buckets))
	for _, b := range buckets {
		sort.SliceStable(b.words, func(i, j int) bool {
			return b.words[i].BBox.X < b.words[j].BBox.X
		})

		var (
			parts []string
			total float64
			bold  bool
			box   = b.words[0].BBox
		)
		for _, w := range b.words {
			parts = append(parts, w.Text)
			total += w.FontSize
			bold = bold || w.Bold()
			box = box.Union(w.BBox)
		}

		lines = append(lines, Line{
			Text:     strings.Join(parts, " "),
			FontSize: total / float64(len(b.words)),
			Bold:     bold,
			BBox:     box,
			Words:    b.words,
		})
	}

	return lines
}

// charFontSizes collects every positive character font size on the page.
func charFontSizes(chars []pdf.Text) []float64 {
	var sizes []float64
	for _, c := range chars {
		if c.FontSize > 0 {
			sizes = append(sizes, c.FontSize)
		}
	}
	return sizes
}

// isBoldFont checks the font resource name for bold face markers.
func isBoldFont(font string) bool {
	f := strings.ToLower(font)
	return strings.Contains(f, "bold") ||
		strings.Contains(f, "black") ||
		strings.Contains(f, "heavy") ||
		strings.Contains(f, "semibold") ||
		strings.Contains(f, "demibold")
}
