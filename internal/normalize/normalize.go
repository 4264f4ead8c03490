// Package normalize canonicalizes the date and amount strings found in
// extracted bank-statement text.
//
// Both entry points are total: ParseDate reports failure through its second
// return value and ParseAmount degrades to zero. Extraction artifacts make
// malformed tokens routine, so neither function ever returns an error.
package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateFormats is the ordered list of accepted date layouts. Order matters:
// an ambiguous numeric triple must resolve day-first, the dominant
// convention in the source documents, so day-first layouts precede
// year-first ones and four-digit years precede two-digit ones.
var dateFormats = []string{
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
	"02/01/06",
	"02-01-06",
	"2006/01/02",
}

// ParseDate parses a date string against the known layouts. The first
// matching layout wins. Two-digit years below 2000 are mapped to 2000+yy.
// Returns ok=false when no layout matches; never returns an error.
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, format := range dateFormats {
		t, err := time.Parse(format, text)
		if err != nil {
			continue
		}

		// Go windows two-digit years into 1969-2068; the source
		// documents are all post-2000, so lift the 19xx half.
		if t.Year() < 2000 {
			t = t.AddDate(100, 0, 0)
		}

		return t, true
	}

	return time.Time{}, false
}

// FormatDate renders a date in the canonical YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseAmount parses an amount string into a decimal, stripping every rune
// that is not a digit, '.', or '-'. Empty or unparseable input yields zero.
// Callers that must distinguish "genuinely zero" from "unparseable" check
// the raw token with LooksNumeric before calling.
func ParseAmount(text string) decimal.Decimal {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}

	return d
}

// LooksNumeric reports whether a raw token is plausibly an amount before
// any stripping: digits with optional thousands separators and an optional
// two-digit decimal part.
func LooksNumeric(text string) bool {
	return numericTokenPattern.MatchString(strings.TrimSpace(text))
}

// Shared token patterns. Both the layout classifier and the line
// reconstructor key on the same lexical shapes, so they live here in the
// leaf package.
var (
	// numericTokenPattern matches amount-shaped tokens like "1,234.56".
	numericTokenPattern = regexp.MustCompile(`^-?[\d,]+(?:\.\d{1,2})?$`)

	// LeadingDatePattern matches a calendar date at the start of a line.
	LeadingDatePattern = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)

	// DateTimePattern matches the "date time" compound found in
	// completion/initiation time cells, e.g. "26-10-2025 14:53:26".
	DateTimePattern = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s+(\d{1,2}:\d{2}:\d{2})`)

	// ReceiptCodeToken matches an opaque reference code standing alone:
	// an uppercase letter followed by 8-12 letters or digits.
	ReceiptCodeToken = regexp.MustCompile(`^[A-Z][A-Z0-9]{8,12}$`)

	// LeadingReceiptCode matches a reference code at the start of a line.
	LeadingReceiptCode = regexp.MustCompile(`^[A-Z][A-Z0-9]{8,12}\b`)

	// EmbeddedReceiptCode finds a reference code anywhere in a line.
	EmbeddedReceiptCode = regexp.MustCompile(`\b[A-Z][A-Z0-9]{8,12}\b`)

	// AmountToken finds amount-shaped tokens anywhere in a line.
	AmountToken = regexp.MustCompile(`[\d,]+\.?\d{0,2}`)
)

// ParseDateTime extracts and parses the first "date time" compound in
// text, discarding the time portion. Returns ok=false when no compound is
// present or its date portion does not parse.
func ParseDateTime(text string) (time.Time, bool) {
	m := DateTimePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	return ParseDate(m[1])
}
