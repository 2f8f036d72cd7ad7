package classify

import "testing"

// ============================================================================
// Class Tests
// ============================================================================

func TestClassString(t *testing.T) {
	tests := []struct {
		class    Class
		expected string
	}{
		{Body, "body"},
		{Section, "section"},
		{Subsection, "subsection"},
		{Class(99), "body"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if tt.class.String() != tt.expected {
				t.Errorf("String() = %v, want %v", tt.class.String(), tt.expected)
			}
		})
	}
}

func TestClassIsHeading(t *testing.T) {
	if Body.IsHeading() {
		t.Error("Body should not be a heading")
	}
	if !Section.IsHeading() {
		t.Error("Section should be a heading")
	}
	if !Subsection.IsHeading() {
		t.Error("Subsection should be a heading")
	}
}

// ============================================================================
// Classifier Tests
// ============================================================================

func TestClassifyRules(t *testing.T) {
	classifier := NewClassifier()
	median := 12.0

	tests := []struct {
		name     string
		cand     Candidate
		expected Class
		rule     string
	}{
		{
			"numbered subsection",
			Candidate{Text: "1.1 Overview", FontSize: 12},
			Subsection, "numbered-subsection",
		},
		{
			"deep numbered subsection",
			Candidate{Text: "2.3.1 Error Budgets", FontSize: 12},
			Subsection, "numbered-subsection",
		},
		{
			"numbered section",
			Candidate{Text: "1. Introduction", FontSize: 12},
			Section, "numbered-section",
		},
		{
			"large font",
			Candidate{Text: "Executive Summary of the quarterly filing", FontSize: 18},
			Section, "large-font",
		},
		{
			"all caps",
			Candidate{Text: "METHODOLOGY", FontSize: 12},
			Section, "all-caps",
		},
		{
			"all caps with digits",
			Candidate{Text: "Q3 RESULTS", FontSize: 12},
			Section, "all-caps",
		},
		{
			"trailing colon",
			Candidate{Text: "Key findings include the following:", FontSize: 12},
			Subsection, "trailing-colon",
		},
		{
			"short title case",
			Candidate{Text: "Revenue Growth Drivers", FontSize: 12},
			Subsection, "short-title-case",
		},
		{
			"plain body text",
			Candidate{Text: "The quarter closed with revenue slightly above guidance.", FontSize: 12},
			Body, "body",
		},
		{
			"long title-cased line is body",
			Candidate{Text: "The Nine Word Limit Keeps Headings From Swallowing Prose Text", FontSize: 12},
			Body, "body",
		},
		{
			"short acronym is body",
			Candidate{Text: "API", FontSize: 12},
			Body, "body",
		},
		{
			"mixed case long text is body",
			Candidate{Text: "revenue grew while costs held flat across regions", FontSize: 12},
			Body, "body",
		},
		{
			"empty text",
			Candidate{Text: "", FontSize: 12},
			Body, "body",
		},
		{
			"whitespace only",
			Candidate{Text: "   \t  ", FontSize: 12},
			Body, "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, rule := classifier.Explain(tt.cand, median)
			if class != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.cand.Text, class, tt.expected)
			}
			if rule != tt.rule {
				t.Errorf("Explain(%q) rule = %v, want %v", tt.cand.Text, rule, tt.rule)
			}
		})
	}
}

func TestClassifyNumberedPrecedence(t *testing.T) {
	classifier := NewClassifier()

	// A numbered subsection wins even when its font is below the page
	// median; the numbered prefix dominates the font-size signal.
	cand := Candidate{Text: "1.1 Overview", FontSize: 8}
	if got := classifier.Classify(cand, 12.0); got != Subsection {
		t.Errorf("Classify() = %v, want Subsection", got)
	}

	// A numbered section prefix beats a large font, which would also
	// match, so the rule name must report the numbered rule.
	cand = Candidate{Text: "3. Outlook", FontSize: 20}
	class, rule := classifier.Explain(cand, 12.0)
	if class != Section || rule != "numbered-section" {
		t.Errorf("Explain() = (%v, %v), want (Section, numbered-section)", class, rule)
	}

	// "1.1" must be caught by the subsection rule before the section
	// rule sees its "1." prefix.
	cand = Candidate{Text: "1.1 Scope", FontSize: 12}
	class, rule = classifier.Explain(cand, 12.0)
	if class != Subsection || rule != "numbered-subsection" {
		t.Errorf("Explain() = (%v, %v), want (Subsection, numbered-subsection)", class, rule)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	classifier := NewClassifier()
	cand := Candidate{Text: "RESULTS:", FontSize: 14}

	first := classifier.Classify(cand, 12.0)
	for i := 0; i < 10; i++ {
		if got := classifier.Classify(cand, 12.0); got != first {
			t.Fatalf("Classify() not deterministic: got %v then %v", first, got)
		}
	}
}

func TestClassifyZeroMedian(t *testing.T) {
	classifier := NewClassifier()

	// A page with no measurable font sizes must not divide by zero or
	// treat every line as large-font.
	cand := Candidate{Text: "ordinary text on a strange page", FontSize: 12}
	if got := classifier.Classify(cand, 0); got != Body {
		t.Errorf("Classify() with zero median = %v, want Body", got)
	}
}

func TestClassifyCustomConfig(t *testing.T) {
	config := DefaultConfig()
	config.SectionFontRatio = 2.0
	config.MaxTitleWords = 2
	classifier := NewClassifierWithConfig(config)

	// 18pt on a 12pt page is below the raised 2.0 ratio.
	cand := Candidate{Text: "not large enough anymore", FontSize: 18}
	if got := classifier.Classify(cand, 12.0); got != Body {
		t.Errorf("Classify() = %v, want Body with raised font ratio", got)
	}

	// Three title-cased words exceed the lowered word cap.
	cand = Candidate{Text: "Revenue Growth Drivers", FontSize: 12}
	if got := classifier.Classify(cand, 12.0); got != Body {
		t.Errorf("Classify() = %v, want Body with lowered word cap", got)
	}
}

// ============================================================================
// Helper Tests
// ============================================================================

func TestIsAllCaps(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"METHODOLOGY", true},
		{"Q3 RESULTS", true},
		{"TABLE 4-1", true},
		{"Methodology", false},
		{"mixed CASE", false},
		{"1234", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if isAllCaps(tt.text) != tt.expected {
				t.Errorf("isAllCaps(%q) = %v, want %v", tt.text, !tt.expected, tt.expected)
			}
		})
	}
}

func TestIsTitleCased(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"Revenue Growth", true},
		{"Revenue Growth Drivers", true},
		{"The 2022 Annual Report", true},
		{"revenue growth", false},
		{"Revenue growth", false},
		{"REVENUE GROWTH", false},
		{"1234", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if isTitleCased(tt.text) != tt.expected {
				t.Errorf("isTitleCased(%q) = %v, want %v", tt.text, !tt.expected, tt.expected)
			}
		})
	}
}

func TestMedianFontSize(t *testing.T) {
	tests := []struct {
		name     string
		sizes    []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []float64{12}, 12},
		{"odd count", []float64{10, 12, 14}, 12},
		{"even count takes upper middle", []float64{10, 12, 14, 16}, 14},
		{"unsorted input", []float64{16, 10, 14, 12}, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MedianFontSize(tt.sizes); got != tt.expected {
				t.Errorf("MedianFontSize(%v) = %v, want %v", tt.sizes, got, tt.expected)
			}
		})
	}
}

func TestMedianFontSizeDoesNotMutate(t *testing.T) {
	sizes := []float64{16, 10, 14}
	MedianFontSize(sizes)
	if sizes[0] != 16 || sizes[1] != 10 || sizes[2] != 14 {
		t.Error("MedianFontSize should not sort the caller's slice")
	}
}
