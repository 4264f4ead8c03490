// Package config builds the engine and reporter configurations used by the
// CLI, applying flag overrides on top of the library defaults.
package config

import (
	"fmt"

	"golang-statement-parser/internal/engine"
	"golang-statement-parser/internal/reconstruct"
	"golang-statement-parser/internal/reporter"
)

// CreateEngineConfig creates an engine configuration. A lookaheadLines of
// zero keeps the reconstruction default.
func CreateEngineConfig(lookaheadLines int) (*engine.Config, error) {
	if lookaheadLines < 0 {
		return nil, fmt.Errorf("lookahead lines cannot be negative, got %d", lookaheadLines)
	}

	reconstructConfig := reconstruct.DefaultConfig()
	if lookaheadLines > 0 {
		reconstructConfig.LookaheadLines = lookaheadLines
	}

	return &engine.Config{
		Reconstruct: reconstructConfig,
	}, nil
}

// CreateEngine creates the parse engine from a configuration.
func CreateEngine(config *engine.Config) (*engine.Engine, error) {
	return engine.NewEngine(config)
}

// CreateReportGenerator creates a report generator for the given format.
func CreateReportGenerator(format string) (*reporter.ReportGenerator, error) {
	reportConfig := reporter.DefaultReportConfig()
	reportConfig.Format = reporter.OutputFormat(format)

	return reporter.NewReportGenerator(reportConfig)
}
