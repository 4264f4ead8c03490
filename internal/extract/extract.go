// Package extract loads statement content from disk into the neutral
// document model. It supports text-based PDF statements, plain-text dumps,
// and pre-extracted JSON table structures.
package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"golang-statement-parser/internal/layout"
	"golang-statement-parser/pkg/errors"
	"golang-statement-parser/pkg/logger"
)

// Loader reads a statement file and produces a layout.Document. The input
// format is chosen by file extension; anything unrecognized is treated as
// plain text.
type Loader struct {
	logger logger.Logger
}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{
		logger: logger.GetGlobalLogger().WithComponent("extract"),
	}
}

// Load reads the statement at path. It returns an input-unavailable error
// when the file cannot be read or yields no content at all.
func (l *Loader) Load(path string) (*layout.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.FileError(errors.CodeFileNotFound, path, err)
	}
	if info.IsDir() {
		return nil, errors.ExtractionError(errors.CodeUnsupportedInput, path, nil).
			WithContext("reason", "path is a directory")
	}

	var doc *layout.Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		doc, err = l.loadPDF(path)
	case ".json":
		doc, err = l.loadJSON(path)
	default:
		doc, err = l.loadText(path)
	}
	if err != nil {
		return nil, err
	}

	if doc.IsEmpty() {
		return nil, errors.ExtractionError(errors.CodeInputUnavailable, path, nil)
	}

	l.logger.WithFields(map[string]interface{}{
		"path":  path,
		"pages": len(doc.Pages),
	}).Debug("Loaded statement document")

	return doc, nil
}

// loadPDF extracts the plain text of each page. Table geometry is not
// recovered from PDFs; the line reconstructor handles the resulting text.
func (l *Loader) loadPDF(path string) (*layout.Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, errors.ExtractionError(errors.CodeInputUnavailable, path, err)
	}
	defer f.Close()

	doc := &layout.Document{Source: path}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			l.logger.WithError(err).WithField("page", i).Warn("Skipping unreadable PDF page")
			continue
		}
		doc.Pages = append(doc.Pages, layout.Page{Text: text})
	}

	return doc, nil
}

// loadText treats the whole file as a single page of line-oriented text.
func (l *Loader) loadText(path string) (*layout.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileError(errors.CodeInputUnavailable, path, err)
	}

	return &layout.Document{
		Source: path,
		Pages:  []layout.Page{{Text: string(data)}},
	}, nil
}

// jsonPage mirrors the pre-extracted table dump format: per page, optional
// free text plus zero or more tables whose cells may be null.
type jsonPage struct {
	Text   string       `json:"text"`
	Tables [][][]*string `json:"tables"`
}

// loadJSON reads a pre-extracted document. Null cells become empty strings
// so downstream column access stays total.
func (l *Loader) loadJSON(path string) (*layout.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileError(errors.CodeInputUnavailable, path, err)
	}

	var pages []jsonPage
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, errors.ExtractionError(errors.CodeUnsupportedInput, path, err).
			WithContext("reason", "expected an array of pages with text and tables fields")
	}

	doc := &layout.Document{Source: path}
	for _, p := range pages {
		page := layout.Page{Text: p.Text}
		for _, rawTable := range p.Tables {
			table := layout.Table{}
			for _, rawRow := range rawTable {
				row := make([]string, len(rawRow))
				for i, cell := range rawRow {
					if cell != nil {
						row[i] = *cell
					}
				}
				table.Rows = append(table.Rows, row)
			}
			page.Tables = append(page.Tables, table)
		}
		doc.Pages = append(doc.Pages, page)
	}

	return doc, nil
}
