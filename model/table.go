package model

import (
	"encoding/csv"
	"strings"
)

// ToMarkdown renders the table as a GitHub-style markdown table. Row 0
// becomes the header row; newlines inside cells are flattened to spaces.
func (t *Table) ToMarkdown() string {
	if len(t.Data) == 0 {
		return ""
	}

	rows := make([]string, 0, len(t.Data)+1)
	rows = append(rows, markdownRow(t.Data[0]))
	rows = append(rows, "|"+strings.Repeat("---|", len(t.Data[0])))
	for _, row := range t.Data[1:] {
		rows = append(rows, markdownRow(row))
	}
	return strings.Join(rows, "\n") + "\n"
}

func markdownRow(cells []string) string {
	flat := make([]string, len(cells))
	for i, cell := range cells {
		flat[i] = strings.ReplaceAll(cell, "\n", " ")
	}
	return "| " + strings.Join(flat, " | ") + " |"
}

// ToCSV renders the table as RFC 4180 CSV, one line per row.
func (t *Table) ToCSV() string {
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	_ = w.WriteAll(t.Data) // cannot fail writing to a strings.Builder
	return buf.String()
}
