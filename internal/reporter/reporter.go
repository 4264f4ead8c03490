// Package reporter renders parsed transaction records in the supported
// output formats. JSON is the primary machine-readable contract; CSV and
// console output exist for spreadsheets and quick inspection.
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"golang-statement-parser/internal/models"
)

// OutputFormat represents the supported report output formats.
type OutputFormat string

const (
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatConsole OutputFormat = "console"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatCSV, FormatConsole:
		return true
	default:
		return false
	}
}

// ReportConfig holds configuration options for report generation
type ReportConfig struct {
	// Output format
	Format OutputFormat `json:"format"`

	// CSV options
	CSVDelimiter rune `json:"csv_delimiter"`
	CSVHeaders   bool `json:"csv_headers"`
}

// DefaultReportConfig returns a default report configuration
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:       FormatJSON,
		CSVDelimiter: ',',
		CSVHeaders:   true,
	}
}

// Validate validates the report configuration
func (c *ReportConfig) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	return nil
}

// ReportGenerator renders record sets in the configured format
type ReportGenerator struct {
	config *ReportConfig
}

// NewReportGenerator creates a new report generator with the specified configuration
func NewReportGenerator(config *ReportConfig) (*ReportGenerator, error) {
	if config == nil {
		config = DefaultReportConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report configuration: %w", err)
	}

	return &ReportGenerator{
		config: config,
	}, nil
}

// GenerateReport writes the given records to the provided writer. A nil or
// empty record set is a valid report: JSON renders it as an empty array.
func (rg *ReportGenerator) GenerateReport(records []*models.TransactionRecord, writer io.Writer) error {
	switch rg.config.Format {
	case FormatJSON:
		return rg.generateJSONReport(records, writer)
	case FormatCSV:
		return rg.generateCSVReport(records, writer)
	case FormatConsole:
		return rg.generateConsoleReport(records, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", rg.config.Format)
	}
}

// generateJSONReport writes an indented JSON array of records
func (rg *ReportGenerator) generateJSONReport(records []*models.TransactionRecord, writer io.Writer) error {
	if records == nil {
		records = []*models.TransactionRecord{}
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(records)
}

// generateCSVReport writes one row per record
func (rg *ReportGenerator) generateCSVReport(records []*models.TransactionRecord, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	csvWriter.Comma = rg.config.CSVDelimiter
	defer csvWriter.Flush()

	if rg.config.CSVHeaders {
		headers := []string{
			"Tran_Date",
			"Value_Date",
			"Particulars",
			"Credit",
			"Debit",
			"Balance",
			"Transaction_Code",
		}
		if err := csvWriter.Write(headers); err != nil {
			return fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}

	for _, record := range records {
		valueDate := ""
		if record.ValueDate != nil {
			valueDate = record.ValueDate.Format(models.DateLayout)
		}
		balance := ""
		if record.Balance != nil {
			balance = record.Balance.String()
		}

		row := []string{
			record.TranDate.Format(models.DateLayout),
			valueDate,
			record.Particulars,
			record.Credit.String(),
			record.Debit.String(),
			balance,
			record.TransactionCode,
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// generateConsoleReport writes a human-readable listing
func (rg *ReportGenerator) generateConsoleReport(records []*models.TransactionRecord, writer io.Writer) error {
	fmt.Fprintf(writer, "STATEMENT TRANSACTIONS\n")
	fmt.Fprintf(writer, "Records: %d\n\n", len(records))

	if len(records) == 0 {
		fmt.Fprintf(writer, "No transactions found.\n")
		return nil
	}

	fmt.Fprintf(writer, "%-12s %-12s %-14s %-14s %-16s %s\n",
		"Tran Date", "Value Date", "Credit", "Balance", "Code", "Particulars")
	for _, record := range records {
		valueDate := "-"
		if record.ValueDate != nil {
			valueDate = record.ValueDate.Format(models.DateLayout)
		}
		balance := "-"
		if record.Balance != nil {
			balance = record.Balance.String()
		}
		code := record.TransactionCode
		if code == "" {
			code = "-"
		}

		fmt.Fprintf(writer, "%-12s %-12s %-14s %-14s %-16s %s\n",
			record.TranDate.Format(models.DateLayout),
			valueDate,
			record.Credit.String(),
			balance,
			code,
			record.Particulars)
	}

	return nil
}
