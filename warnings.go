package structura

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal problem encountered during extraction.
// Extraction continues past warnings: the affected page, table, or chart
// is degraded (empty content, missing description, nil image path)
// rather than failing the whole document.
type Warning struct {
	// Page is the 1-indexed page number, or 0 for document-level warnings.
	Page int

	// Op names the stage that degraded: "read", "tables", "images", "ocr".
	Op string

	// Message describes what went wrong and how the output was degraded.
	Message string

	// Err is the underlying error, when one exists.
	Err error
}

// String formats the warning as "page 3: tables: ...". Document-level
// warnings omit the page prefix.
func (w Warning) String() string {
	var b strings.Builder
	if w.Page > 0 {
		fmt.Fprintf(&b, "page %d: ", w.Page)
	}
	b.WriteString(w.Op)
	b.WriteString(": ")
	b.WriteString(w.Message)
	if w.Err != nil {
		fmt.Fprintf(&b, ": %v", w.Err)
	}
	return b.String()
}

// FormatWarnings joins warnings into a newline-separated string suitable
// for logging. It returns "" for an empty slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
