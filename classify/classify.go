// Package classify provides heading detection for extracted text runs,
// classifying each line as a section heading, subsection heading, or body
// text, and tracking the section/subsection context that content blocks
// are tagged with.
package classify

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Class is the classification assigned to a text run.
type Class int

const (
	// Body is ordinary paragraph text.
	Body Class = iota

	// Section is a top-level heading. Encountering one resets the
	// subsection context.
	Section

	// Subsection is a second-level heading nested under the current
	// section.
	Subsection
)

// String returns a string representation of the class.
func (c Class) String() string {
	switch c {
	case Section:
		return "section"
	case Subsection:
		return "subsection"
	default:
		return "body"
	}
}

// IsHeading returns true for Section and Subsection.
func (c Class) IsHeading() bool {
	return c == Section || c == Subsection
}

// Candidate is a single line of text under consideration, with the font
// metadata needed by the classification rules.
type Candidate struct {
	// Text is the line's text content.
	Text string

	// FontSize is the average font size of the line in points.
	FontSize float64

	// Bold indicates a bold font face. Informational only; none of the
	// default rules consult it.
	Bold bool
}

// Config holds configuration for the classifier.
type Config struct {
	// SectionFontRatio is the multiple of the page median font size
	// above which a line is considered a section heading.
	// Default: 1.3
	SectionFontRatio float64

	// MinAllCapsLen is the minimum character count for the all-caps
	// rule to apply, filtering out acronyms and field labels.
	// Default: 3
	MinAllCapsLen int

	// MaxTitleWords is the maximum word count for the title-case rule
	// to apply. Headings are short; long title-cased lines are more
	// likely sentence fragments.
	// Default: 8
	MaxTitleWords int

	// SubsectionPatterns match numbered subsection prefixes such as
	// "1.1" or "2.3.1".
	SubsectionPatterns []*regexp.Regexp

	// SectionPatterns match numbered section prefixes such as "1." or
	// "2.".
	SectionPatterns []*regexp.Regexp
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		SectionFontRatio: 1.3,
		MinAllCapsLen:    3,
		MaxTitleWords:    8,
		SubsectionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\d+\.\d+`),
		},
		SectionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\d+\.`),
		},
	}
}

// rule is one entry in the classifier's decision table. Rules are
// evaluated in order and the first match wins.
type rule struct {
	name  string
	apply func(c *Classifier, cand Candidate, median float64) (Class, bool)
}

// Classifier classifies text runs using an ordered decision table.
// Classification never fails: input matching no rule is Body.
type Classifier struct {
	config Config
	rules  []rule
}

// NewClassifier creates a classifier with default configuration.
func NewClassifier() *Classifier {
	return NewClassifierWithConfig(DefaultConfig())
}

// NewClassifierWithConfig creates a classifier with custom configuration.
func NewClassifierWithConfig(config Config) *Classifier {
	return &Classifier{
		config: config,
		rules: []rule{
			{"numbered-subsection", (*Classifier).matchNumberedSubsection},
			{"numbered-section", (*Classifier).matchNumberedSection},
			{"large-font", (*Classifier).matchLargeFont},
			{"all-caps", (*Classifier).matchAllCaps},
			{"trailing-colon", (*Classifier).matchTrailingColon},
			{"short-title-case", (*Classifier).matchShortTitleCase},
		},
	}
}

// Classify assigns a class to the candidate given the median font size of
// the candidate's page. Numbered prefixes dominate font-size signals: a
// numbered heading may render at body size.
func (c *Classifier) Classify(cand Candidate, pageMedianFontSize float64) Class {
	class, _ := c.Explain(cand, pageMedianFontSize)
	return class
}

// Explain classifies the candidate and also reports the name of the rule
// that matched, or "body" when no rule matched.
func (c *Classifier) Explain(cand Candidate, pageMedianFontSize float64) (Class, string) {
	cand.Text = strings.TrimSpace(cand.Text)
	if cand.Text == "" {
		return Body, "body"
	}

	for _, r := range c.rules {
		if class, ok := r.apply(c, cand, pageMedianFontSize); ok {
			return class, r.name
		}
	}
	return Body, "body"
}

func (c *Classifier) matchNumberedSubsection(cand Candidate, _ float64) (Class, bool) {
	for _, pattern := range c.config.SubsectionPatterns {
		if pattern.MatchString(cand.Text) {
			return Subsection, true
		}
	}
	return Body, false
}

func (c *Classifier) matchNumberedSection(cand Candidate, _ float64) (Class, bool) {
	for _, pattern := range c.config.SectionPatterns {
		if pattern.MatchString(cand.Text) {
			return Section, true
		}
	}
	return Body, false
}

func (c *Classifier) matchLargeFont(cand Candidate, median float64) (Class, bool) {
	if median > 0 && cand.FontSize > c.config.SectionFontRatio*median {
		return Section, true
	}
	return Body, false
}

func (c *Classifier) matchAllCaps(cand Candidate, _ float64) (Class, bool) {
	if utf8.RuneCountInString(cand.Text) > c.config.MinAllCapsLen && isAllCaps(cand.Text) {
		return Section, true
	}
	return Body, false
}

func (c *Classifier) matchTrailingColon(cand Candidate, _ float64) (Class, bool) {
	if strings.HasSuffix(cand.Text, ":") {
		return Subsection, true
	}
	return Body, false
}

func (c *Classifier) matchShortTitleCase(cand Candidate, _ float64) (Class, bool) {
	words := strings.Fields(cand.Text)
	if len(words) > 0 && len(words) <= c.config.MaxTitleWords && isTitleCased(cand.Text) {
		return Subsection, true
	}
	return Body, false
}

// isAllCaps reports whether the text contains at least one uppercase
// letter and no lowercase letters.
func isAllCaps(text string) bool {
	hasUpper := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

// isTitleCased reports whether every word's leading letter is uppercase
// and its remaining letters are lowercase. Words without letters are
// ignored; text with no letters at all is not title-cased.
func isTitleCased(text string) bool {
	hasCased := false
	prevCased := false
	for _, r := range text {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			hasCased = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			hasCased = true
		default:
			prevCased = false
		}
	}
	return hasCased
}

// MedianFontSize returns the median of the given font sizes, using the
// upper middle element for even counts. Returns 0 for an empty slice.
func MedianFontSize(sizes []float64) float64 {
	if len(sizes) == 0 {
		return 0
	}
	sorted := make([]float64, len(sizes))
	copy(sorted, sizes)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}
