package layout

import (
	"strings"

	"golang-statement-parser/internal/normalize"
	"golang-statement-parser/pkg/logger"
)

// Format names the two reconstruction strategies.
type Format int

const (
	// FormatUnstructured processes the document as flattened text lines.
	FormatUnstructured Format = iota
	// FormatStructured processes the document as table rows governed by
	// a canonical header.
	FormatStructured
)

func (f Format) String() string {
	if f == FormatStructured {
		return "structured"
	}
	return "unstructured"
}

// structuredHeaderKeywords identifies a disbursement/receipt ledger header.
// Any one of them qualifies the row.
var structuredHeaderKeywords = []string{
	"receipt no",
	"paid in",
	"completion time",
}

// Classification is the outcome of inspecting a document once. For
// structured documents the first qualifying header row found becomes the
// canonical header for the whole document; later pages are never
// re-classified.
type Classification struct {
	Format Format
	// Header is the canonical header row (structured only).
	Header []string
	// headerText is the lowercased canonical header, cached for repeat
	// suppression.
	headerText string
}

// Classifier inspects a document's tables and decides which path applies.
type Classifier struct {
	logger logger.Logger
}

// NewClassifier creates a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{
		logger: logger.GetGlobalLogger().WithComponent("layout_classifier"),
	}
}

// Classify scans pages in order and returns the document's classification.
// The first table whose header row contains a structured-layout keyword
// wins; a document with no such header is unstructured.
func (c *Classifier) Classify(doc *Document) *Classification {
	for pageIdx, page := range doc.Pages {
		for tableIdx, table := range page.Tables {
			if len(table.Rows) == 0 {
				continue
			}

			header := table.Rows[0]
			text := rowText(header)
			if !containsAny(text, structuredHeaderKeywords) {
				continue
			}

			c.logger.WithFields(logger.Fields{
				"source":  doc.Source,
				"page":    pageIdx,
				"table":   tableIdx,
				"columns": len(header),
			}).Debug("Found structured ledger header")

			return &Classification{
				Format:     FormatStructured,
				Header:     header,
				headerText: text,
			}
		}
	}

	c.logger.WithField("source", doc.Source).Debug("No structured header found, using free-text path")
	return &Classification{Format: FormatUnstructured}
}

// IsHeaderRow reports whether a row repeats the canonical header: either
// textually identical (case-insensitive) or carrying a header keyword.
// Repeated headers appear at the top of every page and must never emit
// records.
func (cl *Classification) IsHeaderRow(row []string) bool {
	text := rowText(row)
	if text == cl.headerText {
		return true
	}
	return containsAny(text, structuredHeaderKeywords)
}

// GatherRows collects the data rows belonging to the canonical table from
// every page. A table on a later page belongs when it repeats the header,
// or when it aligns to the canonical column count and its rows carry a
// leading receipt code or an embedded date-time (continuation data).
func (cl *Classification) GatherRows(doc *Document) [][]string {
	if cl.Format != FormatStructured {
		return nil
	}

	var rows [][]string
	for _, page := range doc.Pages {
		for _, table := range page.Tables {
			if len(table.Rows) == 0 {
				continue
			}

			if !cl.tableBelongs(table) {
				continue
			}

			for _, row := range table.Rows {
				if cl.IsHeaderRow(row) || rowIsBlank(row) {
					continue
				}
				if !looksLikeDataRow(row) {
					continue
				}
				rows = append(rows, row)
			}
		}
	}

	return rows
}

// tableBelongs decides whether a table is part of the canonical ledger
// table rather than some unrelated summary table on the same page.
func (cl *Classification) tableBelongs(table Table) bool {
	first := table.Rows[0]

	if cl.IsHeaderRow(first) {
		return true
	}

	if len(first) != len(cl.Header) || len(cl.Header) == 0 {
		return false
	}

	// Same column count as the canonical header: accept when the first
	// row is recognizably transaction data.
	return looksLikeDataRow(first)
}

// looksLikeDataRow checks for a leading receipt code or an embedded
// date-time compound, the two shapes transaction rows take.
func looksLikeDataRow(row []string) bool {
	if len(row) > 0 && normalize.ReceiptCodeToken.MatchString(strings.TrimSpace(row[0])) {
		return true
	}
	for _, cell := range row {
		if normalize.DateTimePattern.MatchString(cell) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
