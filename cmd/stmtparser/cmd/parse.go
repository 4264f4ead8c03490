package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang-statement-parser/cmd/stmtparser/config"
	"golang-statement-parser/internal/extract"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the parse command
var (
	outputFormat   string
	outputFile     string
	debugText      bool
	lookaheadLines int
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <input>",
	Short: "Parse a bank statement into transaction records",
	Long: `Parse rebuilds the credit transactions of a bank statement and writes
them out as structured records.

The input may be a text-based PDF statement, a plain-text dump of one, or
a pre-extracted JSON document with page text and tables.

Examples:
  # Parse a statement and print JSON records
  stmtparser parse statement.pdf

  # Write CSV to a file
  stmtparser parse statement.pdf --output-format csv --output-file records.csv

  # Inspect the raw extracted text instead of parsing
  stmtparser parse statement.pdf --debug-text`,

	Args:    cobra.ExactArgs(1),
	PreRunE: validateParseFlags,
	RunE:    runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	// Output flags
	parseCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "json", "output format: json, csv, console")
	parseCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")

	// Debug flags
	parseCmd.Flags().BoolVar(&debugText, "debug-text", false, "print the extracted text lines and exit")

	// Reconstruction tuning flags
	parseCmd.Flags().IntVar(&lookaheadLines, "lookahead-lines", 0, "lines to scan ahead when merging wrapped entries (0 = default)")

	// Bind flags to viper
	viper.BindPFlag("output-format", parseCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", parseCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("debug-text", parseCmd.Flags().Lookup("debug-text"))
	viper.BindPFlag("lookahead-lines", parseCmd.Flags().Lookup("lookahead-lines"))
}

func validateParseFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	outputFormat = viper.GetString("output-format")
	outputFile = viper.GetString("output-file")
	debugText = viper.GetBool("debug-text")
	lookaheadLines = viper.GetInt("lookahead-lines")

	// Validate output format
	validFormats := map[string]bool{"json": true, "csv": true, "console": true}
	if !validFormats[outputFormat] {
		return fmt.Errorf("invalid output format '%s'. Valid formats: json, csv, console", outputFormat)
	}

	if lookaheadLines < 0 {
		return fmt.Errorf("lookahead-lines cannot be negative")
	}

	// Validate output file directory exists if specified
	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}

	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	inputFile := args[0]
	errorHandler := NewCLIErrorHandler()

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Parsing statement...\n")
		fmt.Fprintf(os.Stderr, "Input file: %s\n", inputFile)
		fmt.Fprintf(os.Stderr, "Output format: %s\n", outputFormat)
		if outputFile != "" {
			fmt.Fprintf(os.Stderr, "Output file: %s\n", outputFile)
		}
	}

	// Load the statement document
	loader := extract.NewLoader()
	doc, err := loader.Load(inputFile)
	if err != nil {
		os.Exit(errorHandler.HandleError(err))
	}

	// Debug mode: dump the flattened text instead of parsing
	if debugText {
		writer, cleanup, err := openOutput()
		if err != nil {
			return err
		}
		defer cleanup()

		for _, line := range doc.FlattenText() {
			fmt.Fprintln(writer, line)
		}
		return nil
	}

	// Create the engine
	engineConfig, err := config.CreateEngineConfig(lookaheadLines)
	if err != nil {
		return fmt.Errorf("failed to create engine config: %w", err)
	}

	parseEngine, err := config.CreateEngine(engineConfig)
	if err != nil {
		return fmt.Errorf("failed to create parse engine: %w", err)
	}

	// Parse the document
	records, result, err := parseEngine.Parse(ctx, doc)
	if err != nil {
		os.Exit(errorHandler.HandleError(err))
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "%s\n", result.Summary())
	}

	// Generate the report
	reportGenerator, err := config.CreateReportGenerator(outputFormat)
	if err != nil {
		return fmt.Errorf("failed to create report generator: %w", err)
	}

	writer, cleanup, err := openOutput()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := reportGenerator.GenerateReport(records, writer); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	return nil
}

// openOutput returns the destination writer for the report: the output
// file when set, stdout otherwise.
func openOutput() (io.Writer, func(), error) {
	if outputFile == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
