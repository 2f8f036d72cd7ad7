package model

import "sort"

// Stats summarizes an extracted document: block counts by type plus the
// unique section and subsection labels encountered.
type Stats struct {
	Pages       int
	Blocks      int
	Paragraphs  int
	Tables      int
	Charts      int
	Sections    []string // sorted unique
	Subsections []string // sorted unique
}

// Stats walks the document and aggregates summary statistics
func (d *Document) Stats() Stats {
	stats := Stats{Pages: len(d.Pages)}

	sections := make(map[string]struct{})
	subsections := make(map[string]struct{})

	for _, page := range d.Pages {
		for _, b := range page.Content {
			stats.Blocks++
			switch b.Type() {
			case BlockParagraph:
				stats.Paragraphs++
			case BlockTable:
				stats.Tables++
			case BlockChart:
				stats.Charts++
			}

			section, subSection := b.Context()
			if section != nil && *section != "" {
				sections[*section] = struct{}{}
			}
			if subSection != nil && *subSection != "" {
				subsections[*subSection] = struct{}{}
			}
		}
	}

	for s := range sections {
		stats.Sections = append(stats.Sections, s)
	}
	for s := range subsections {
		stats.Subsections = append(stats.Subsections, s)
	}
	sort.Strings(stats.Sections)
	sort.Strings(stats.Subsections)

	return stats
}
