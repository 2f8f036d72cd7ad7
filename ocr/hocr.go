package ocr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Block is one recognized line of text with its position in image pixels
// (top-left origin, x1/y1 exclusive).
type Block struct {
	Text           string
	X0, Y0, X1, Y1 int

	// Confidence is the mean word confidence reported by the engine on a
	// 0-100 scale, or -1 when the document carries none.
	Confidence float64
}

// ParseHOCR extracts positioned text lines from an hOCR document, the
// XHTML layout format Tesseract emits: ocr_line elements carry the line
// bounding box in their title attribute, nested ocrx_word elements carry
// the text and per-word confidence. Lines without a bounding box or
// without text are dropped.
func ParseHOCR(data []byte) ([]Block, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	var blocks []Block
	collectLines(doc, &blocks)
	return blocks, nil
}

// collectLines walks the DOM for ocr_line elements. Lines do not nest,
// so traversal stops at each match.
func collectLines(n *html.Node, blocks *[]Block) {
	if n.Type == html.ElementNode && hasClass(n, "ocr_line") {
		if b, ok := lineBlock(n); ok {
			*blocks = append(*blocks, b)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectLines(c, blocks)
	}
}

// lineBlock builds a Block from one ocr_line element.
func lineBlock(n *html.Node) (Block, bool) {
	x0, y0, x1, y1, ok := parseBBox(attrValue(n, "title"))
	if !ok {
		return Block{}, false
	}

	var words []string
	var confSum float64
	var confCount int
	collectWords(n, &words, &confSum, &confCount)

	text := strings.Join(words, " ")
	if text == "" {
		// Some producers put bare text in the line element instead of
		// ocrx_word children.
		text = textContent(n)
	}
	if text == "" {
		return Block{}, false
	}

	confidence := -1.0
	if confCount > 0 {
		confidence = confSum / float64(confCount)
	}

	return Block{Text: text, X0: x0, Y0: y0, X1: x1, Y1: y1, Confidence: confidence}, true
}

// collectWords gathers ocrx_word descendants of a line element.
func collectWords(n *html.Node, words *[]string, confSum *float64, confCount *int) {
	if n.Type == html.ElementNode && hasClass(n, "ocrx_word") {
		if text := textContent(n); text != "" {
			*words = append(*words, text)
			if conf, ok := parseWordConfidence(attrValue(n, "title")); ok {
				*confSum += conf
				*confCount++
			}
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectWords(c, words, confSum, confCount)
	}
}

// parseBBox reads the "bbox x0 y0 x1 y1" property from an hOCR title
// attribute.
func parseBBox(title string) (x0, y0, x1, y1 int, ok bool) {
	fields, found := titleProperty(title, "bbox")
	if !found || len(fields) != 4 {
		return 0, 0, 0, 0, false
	}

	var coords [4]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		coords[i] = v
	}
	return coords[0], coords[1], coords[2], coords[3], true
}

// parseWordConfidence reads the "x_wconf n" property from an hOCR title
// attribute.
func parseWordConfidence(title string) (float64, bool) {
	fields, found := titleProperty(title, "x_wconf")
	if !found || len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// titleProperty extracts one semicolon-separated property from an hOCR
// title attribute and returns its value fields.
func titleProperty(title, name string) ([]string, bool) {
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(part)
		if len(fields) > 0 && fields[0] == name {
			return fields[1:], true
		}
	}
	return nil, false
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// hasClass reports whether the node's class attribute contains the given
// class name.
func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attrValue(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

// textContent extracts all text from a node and its descendants with
// whitespace collapsed.
func textContent(n *html.Node) string {
	var b strings.Builder
	textContentRecursive(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func textContentRecursive(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContentRecursive(c, b)
	}
}
