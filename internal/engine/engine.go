// Package engine orchestrates the parsing pipeline: classify the document
// layout, run the matching extraction path, then assemble the final record
// set.
package engine

import (
	"context"
	"fmt"

	"golang-statement-parser/internal/assemble"
	"golang-statement-parser/internal/layout"
	"golang-statement-parser/internal/models"
	"golang-statement-parser/internal/reconstruct"
	"golang-statement-parser/internal/tabular"
	"golang-statement-parser/pkg/errors"
	"golang-statement-parser/pkg/logger"
)

// Config holds engine configuration.
type Config struct {
	// Reconstruct tunes the line reconstructor used on unstructured text.
	// Nil means defaults.
	Reconstruct *reconstruct.Config
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Reconstruct: reconstruct.DefaultConfig(),
	}
}

// Result reports which path parsed the document and the per-stage
// statistics. Exactly one of Tabular and Reconstruct is set.
type Result struct {
	Format      layout.Format
	Tabular     *tabular.Stats
	Reconstruct *reconstruct.Stats
	Assembly    *assemble.Stats
}

// Summary returns a one-line account of the parse.
func (r *Result) Summary() string {
	path := "line reconstruction"
	if r.Format == layout.FormatStructured {
		path = "tabular extraction"
	}
	return fmt.Sprintf("parsed via %s: %s", path, r.Assembly.String())
}

// Engine ties the pipeline stages together. It is single-threaded: one
// document is parsed front to back, and record order follows document
// order.
type Engine struct {
	classifier    *layout.Classifier
	extractor     *tabular.Extractor
	reconstructor *reconstruct.Reconstructor
	assembler     *assemble.Assembler
	logger        logger.Logger
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(config *Config) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	reconstructConfig := config.Reconstruct
	if reconstructConfig == nil {
		reconstructConfig = reconstruct.DefaultConfig()
	}

	reconstructor, err := reconstruct.NewReconstructor(reconstructConfig)
	if err != nil {
		return nil, errors.WrapIfNeeded(err, errors.CategoryConfiguration, errors.CodeInvalidConfig,
			"invalid reconstructor configuration")
	}

	return &Engine{
		classifier:    layout.NewClassifier(),
		extractor:     tabular.NewExtractor(),
		reconstructor: reconstructor,
		assembler:     assemble.NewAssembler(),
		logger:        logger.GetGlobalLogger().WithComponent("engine"),
	}, nil
}

// Parse rebuilds the transaction records of one statement document. A
// document with no usable content is the only fatal condition; a document
// that simply contains no transactions yields an empty record set and no
// error.
func (e *Engine) Parse(ctx context.Context, doc *layout.Document) ([]*models.TransactionRecord, *Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if doc == nil || doc.IsEmpty() {
		source := ""
		if doc != nil {
			source = doc.Source
		}
		return nil, nil, errors.ExtractionError(errors.CodeInputUnavailable, source, nil)
	}

	classification := e.classifier.Classify(doc)
	result := &Result{Format: classification.Format}

	e.logger.WithFields(map[string]interface{}{
		"source": doc.Source,
		"format": classification.Format.String(),
	}).Info("Classified statement layout")

	var candidates []*models.TransactionRecord
	switch classification.Format {
	case layout.FormatStructured:
		candidates, result.Tabular = e.extractor.Extract(classification, doc)
	default:
		candidates, result.Reconstruct = e.reconstructor.Reconstruct(doc.FlattenText())
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	records, assemblyStats := e.assembler.Assemble(candidates)
	result.Assembly = assemblyStats

	e.logger.WithFields(map[string]interface{}{
		"source":  doc.Source,
		"records": len(records),
	}).Info(result.Summary())

	return records, result, nil
}
