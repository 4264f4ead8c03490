// Package layout classifies extracted statement documents and maps table
// columns to semantic roles.
//
// A document arrives from the extraction collaborator as pages of raw text
// and/or tables of cells; this package decides once, per document, whether
// the structured tabular path or the free-text reconstruction path applies,
// and for structured documents binds the canonical header row that governs
// every subsequent page.
package layout

import (
	"strings"
)

// Table is an ordered sequence of rows, each an ordered sequence of cell
// strings. Absent cells arrive as empty strings; row 0 is conventionally
// the header.
type Table struct {
	Rows [][]string
}

// Page holds one page's extraction output: flattened text, extracted
// tables, or both.
type Page struct {
	Text   string
	Tables []Table
}

// Document is the unit of reconstruction. The engine processes each
// document independently; nothing here is shared across documents.
type Document struct {
	// Source identifies the document for logs and errors.
	Source string
	Pages  []Page
}

// IsEmpty reports whether the document carries no text and no table
// content at all. An empty document is the input-unavailable case.
func (d *Document) IsEmpty() bool {
	for _, page := range d.Pages {
		if strings.TrimSpace(page.Text) != "" {
			return false
		}
		for _, table := range page.Tables {
			for _, row := range table.Rows {
				if !rowIsBlank(row) {
					return false
				}
			}
		}
	}
	return true
}

// FlattenText renders the whole document as ordered text lines for the
// free-text path. Table rows are joined cell-wise ahead of each page's raw
// text, mirroring how the extraction collaborator serializes tables it
// could not classify.
func (d *Document) FlattenText() []string {
	var lines []string

	for _, page := range d.Pages {
		for _, table := range page.Tables {
			for _, row := range table.Rows {
				text := joinCells(row)
				if strings.TrimSpace(text) != "" {
					lines = append(lines, text)
				}
			}
		}

		if page.Text != "" {
			for _, line := range strings.Split(page.Text, "\n") {
				lines = append(lines, line)
			}
		}
	}

	return lines
}

// joinCells renders a row as a single space-joined line, skipping empty
// cells.
func joinCells(row []string) string {
	var parts []string
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			parts = append(parts, strings.TrimSpace(cell))
		}
	}
	return strings.Join(parts, " ")
}

// rowText lowercases the full row for keyword matching, keeping empty
// cells so header comparisons see the same shape on every page.
func rowText(row []string) string {
	return strings.ToLower(strings.Join(row, " "))
}

func rowIsBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
