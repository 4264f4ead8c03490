// Package tabular extracts transaction records from structured ledger
// tables: documents whose rows were cleanly extracted under a canonical
// header.
package tabular

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"golang-statement-parser/internal/layout"
	"golang-statement-parser/internal/models"
	"golang-statement-parser/internal/normalize"
	"golang-statement-parser/pkg/logger"
)

// placeholderValues are cell contents that mean "no amount here" rather
// than a parseable token.
var placeholderValues = map[string]bool{
	"none": true,
	"null": true,
	"n/a":  true,
	"-":    true,
}

// Stats counts what happened to the rows of one document.
type Stats struct {
	RowsSeen        int
	SkippedNoDate   int
	SkippedNoDetail int
	SkippedDebit    int
	SkippedNoCredit int
	RecordsEmitted  int
}

// String returns a human-readable summary of extraction statistics
func (s *Stats) String() string {
	return fmt.Sprintf("Extracted %d records from %d rows (%d no date, %d no details, %d debit-only, %d no credit)",
		s.RecordsEmitted, s.RowsSeen, s.SkippedNoDate, s.SkippedNoDetail, s.SkippedDebit, s.SkippedNoCredit)
}

// Extractor consumes the canonical table rows of a structured document and
// emits candidate transaction records in source row order.
type Extractor struct {
	logger logger.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		logger: logger.GetGlobalLogger().WithComponent("tabular_extractor"),
	}
}

// Extract maps each data row through the column map and emits one record
// per surviving row. Rows are skipped when the description is empty, the
// date fails to parse, or the credit is zero; debit-only rows are excluded
// by policy, since the system tracks incoming funds only. The balance
// column is never read. Row order is preserved; there is no global
// re-sort.
func (e *Extractor) Extract(cl *layout.Classification, doc *layout.Document) ([]*models.TransactionRecord, *Stats) {
	stats := &Stats{}

	columns := layout.BuildColumnMap(cl.Header)
	if columns.IsAmbiguous() {
		// Non-fatal: every role's field stays empty for this document,
		// so no row can satisfy the emission invariants.
		e.logger.WithFields(logger.Fields{
			"source": doc.Source,
			"header": strings.Join(cl.Header, " | "),
		}).Warn("Header matched no role keywords, fields will stay empty")
	}

	e.logger.WithFields(logger.Fields{
		"source":       doc.Source,
		"mapped_roles": columns.Len(),
	}).Debug("Starting tabular extraction")

	rows := cl.GatherRows(doc)

	var records []*models.TransactionRecord
	for _, row := range rows {
		stats.RowsSeen++

		if record := e.extractRow(columns, row, stats); record != nil {
			records = append(records, record)
			stats.RecordsEmitted++
		}
	}

	e.logger.WithFields(logger.Fields{
		"source":  doc.Source,
		"summary": stats.String(),
	}).Debug("Finished tabular extraction")

	return records, stats
}

// extractRow builds a record from one row, or returns nil when the row
// fails a validity check. Failures are local and never propagate.
func (e *Extractor) extractRow(columns layout.ColumnMap, row []string, stats *Stats) *models.TransactionRecord {
	// The completion-time cell carries a "date time" compound; only the
	// date portion matters. An initiation-time column in the same layout
	// is never mapped, so it cannot leak in here.
	tranDate, ok := normalize.ParseDateTime(columns.Cell(row, layout.RoleTranDate))
	if !ok {
		stats.SkippedNoDate++
		return nil
	}

	particulars := models.NormalizeWhitespace(columns.Cell(row, layout.RoleDescription))
	if particulars == "" {
		stats.SkippedNoDetail++
		return nil
	}

	credit := parseAmountCell(columns.Cell(row, layout.RoleCredit))
	debit := parseAmountCell(columns.Cell(row, layout.RoleDebit))

	if credit.IsZero() {
		if debit.IsPositive() {
			stats.SkippedDebit++
		} else {
			stats.SkippedNoCredit++
		}
		return nil
	}

	record := models.NewTransactionRecord(tranDate, particulars, credit)
	record.TransactionCode = columns.Cell(row, layout.RoleReferenceCode)
	return record
}

// parseAmountCell treats placeholder cells as absent before handing the
// token to the normalizer, which itself degrades to zero on anything
// unparseable.
func parseAmountCell(cell string) decimal.Decimal {
	if cell == "" || placeholderValues[strings.ToLower(cell)] {
		return decimal.Zero
	}
	return normalize.ParseAmount(cell)
}
