// Package images decides which embedded PDF images are worth keeping and
// persists the keepers as PNG files.
//
// Classification is dimensional only: an image counts as a chart when it
// covers a meaningful share of its page AND clears an absolute pixel-area
// floor. Everything else (bullets, logos, rules, decorative strips) is
// discarded. No pixel content is inspected.
package images

// Class is the outcome of sizing an embedded image against its page.
type Class int

const (
	// Discard marks an image too small to carry content.
	Discard Class = iota
	// Chart marks an image large enough to be a meaningful visual element.
	Chart
)

// String returns a human-readable name for the class.
func (c Class) String() string {
	switch c {
	case Chart:
		return "chart"
	default:
		return "discard"
	}
}

// Config holds the classification thresholds.
type Config struct {
	// AreaRatioThreshold is the fraction of the page area (points) the
	// image's pixel area must exceed. Default 0.03.
	AreaRatioThreshold float64

	// MinPixelArea is the absolute pixel area the image must exceed,
	// regardless of page size. Default 10000.
	MinPixelArea int
}

// DefaultConfig returns the default classification thresholds.
func DefaultConfig() Config {
	return Config{
		AreaRatioThreshold: 0.03,
		MinPixelArea:       10000,
	}
}

// Classifier sizes embedded images against their page. Both thresholds
// must hold: the ratio alone passes tiny images on tiny pages, the
// absolute floor alone passes large decorations on large pages.
type Classifier struct {
	config Config
}

// NewClassifier creates a classifier with default thresholds.
func NewClassifier() *Classifier {
	return NewClassifierWithConfig(DefaultConfig())
}

// NewClassifierWithConfig creates a classifier with custom thresholds.
func NewClassifierWithConfig(config Config) *Classifier {
	return &Classifier{config: config}
}

// Classify reports whether an image of widthPx by heightPx pixels placed
// on a pageW by pageH point page is a Chart or a Discard.
func (c *Classifier) Classify(widthPx, heightPx int, pageW, pageH float64) Class {
	pixelArea := widthPx * heightPx
	if pixelArea <= c.config.MinPixelArea {
		return Discard
	}

	pageArea := pageW * pageH
	if pageArea <= 0 {
		return Discard
	}

	if float64(pixelArea)/pageArea <= c.config.AreaRatioThreshold {
		return Discard
	}

	return Chart
}
