package structura

// ExtractOptions holds configuration for an extraction run. Options are
// set through the Extractor's fluent methods.
type ExtractOptions struct {
	// Page selection (1-indexed, nil means all pages)
	pages []int

	// Document access
	password string

	// Chart handling
	enableOCR bool
	imageDir  string

	// Heading context scope: false resets section state on every page,
	// true carries it across page boundaries.
	documentContext bool

	// Paragraph assembly
	maxParagraphLen int

	// Progress reporting
	onPage func(page, total int)
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:           nil,
		enableOCR:       false,
		imageDir:        "",
		documentContext: false,
		maxParagraphLen: 500,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		password:        o.password,
		enableOCR:       o.enableOCR,
		imageDir:        o.imageDir,
		documentContext: o.documentContext,
		maxParagraphLen: o.maxParagraphLen,
		onPage:          o.onPage,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
