// Package assemble applies the shared emission filters to the candidate
// records produced by either reconstruction path.
package assemble

import (
	"fmt"

	"golang-statement-parser/internal/models"
	"golang-statement-parser/pkg/logger"
)

// Stats counts the assembly outcome for one document.
type Stats struct {
	Candidates int
	Accepted   int
	Rejected   int
}

// String returns a human-readable summary of assembly statistics
func (s *Stats) String() string {
	return fmt.Sprintf("Assembled %d of %d candidate records (%d rejected)",
		s.Accepted, s.Candidates, s.Rejected)
}

// Assembler guarantees that every emitted record has a non-empty
// description, a valid transaction date, and a positive credit. It applies
// no other business logic: records pass through unedited and in the order
// they were produced.
type Assembler struct {
	logger logger.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler() *Assembler {
	return &Assembler{
		logger: logger.GetGlobalLogger().WithComponent("record_assembler"),
	}
}

// Assemble concatenates the given batches, filters out candidates that
// fail the emission invariants, and returns the surviving records. A
// document is classified into exactly one path, so in practice exactly one
// batch contributes.
func (a *Assembler) Assemble(batches ...[]*models.TransactionRecord) ([]*models.TransactionRecord, *Stats) {
	stats := &Stats{}
	var records []*models.TransactionRecord

	for _, batch := range batches {
		for _, record := range batch {
			stats.Candidates++

			if err := record.Validate(); err != nil {
				stats.Rejected++
				a.logger.WithError(err).WithField("record", record.String()).Debug("Rejected candidate record")
				continue
			}

			records = append(records, record)
			stats.Accepted++
		}
	}

	return records, stats
}
